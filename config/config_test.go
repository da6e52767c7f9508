package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"laser-trainer/internal/domain/entity"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 220, cfg.Detection.Threshold)
	require.Equal(t, 5, cfg.Detection.MinArea)
	require.Equal(t, 30.0, cfg.Loop.Rate)
	require.Equal(t, 500*time.Millisecond, cfg.Loop.HitMarker)
	require.Equal(t, 3*time.Second, cfg.Loop.ErrorMessage)
	require.Equal(t, ":8765", cfg.HTTP.Addr)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LASER_DETECTION_THRESHOLD", "200")
	t.Setenv("LASER_LOOP_HIT_MARKER", "250ms")
	t.Setenv("LASER_CALIBRATION_RADIUS", "150")
	t.Setenv("TELEGRAM_TOKEN", "token-from-env")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 200, cfg.Detection.Threshold)
	require.Equal(t, 250*time.Millisecond, cfg.Loop.HitMarker)
	require.Equal(t, 150.0, cfg.Calibration.Radius)
	require.Equal(t, "token-from-env", cfg.Telegram.Token)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laser.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target:\n  rings: 8\nserial:\n  port: /dev/ttyACM0\n"), 0o644))
	t.Setenv("LASER_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Target.Rings)
	require.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	require.Equal(t, 200.0, cfg.Target.Radius)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("LASER_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"threshold":   func(c *Config) { c.Detection.Threshold = 300 },
		"min area":    func(c *Config) { c.Detection.MinArea = -1 },
		"calibration": func(c *Config) { c.Calibration.Radius = -5 },
		"radius only": func(c *Config) { c.Calibration.Radius = 160 },
		"center only": func(c *Config) { c.Calibration.CenterX, c.Calibration.CenterY = 320, 240 },
		"radius":      func(c *Config) { c.Target.Radius = 0 },
		"ring width":  func(c *Config) { c.Target.RingWidth = 0 },
		"rings":       func(c *Config) { c.Target.Rings = 0 },
		"bull":        func(c *Config) { c.Target.BullRadius = 500 },
		"rate":        func(c *Config) { c.Loop.Rate = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestCalibrationCircle(t *testing.T) {
	cfg := Default()
	c, err := cfg.CalibrationCircle(640, 480)
	require.NoError(t, err)
	require.Equal(t, entity.Circle{X: 320, Y: 240, Radius: 160}, c)

	cfg.Calibration = CalibrationConfig{CenterX: 300, CenterY: 200, Radius: 120}
	c, err = cfg.CalibrationCircle(640, 480)
	require.NoError(t, err)
	require.Equal(t, entity.Circle{X: 300, Y: 200, Radius: 120}, c)

	_, err = Default().CalibrationCircle(2, 2)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_CalibrationRadiusWithoutCenter(t *testing.T) {
	t.Setenv("LASER_CALIBRATION_RADIUS", "160")

	cfg, err := Load()
	require.NoError(t, err)
	require.ErrorIs(t, cfg.Validate(), ErrInvalid)

	_, err = cfg.CalibrationCircle(640, 480)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_CalibrationFull(t *testing.T) {
	t.Setenv("LASER_CALIBRATION_CENTER_X", "330")
	t.Setenv("LASER_CALIBRATION_CENTER_Y", "250")
	t.Setenv("LASER_CALIBRATION_RADIUS", "160")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	c, err := cfg.CalibrationCircle(640, 480)
	require.NoError(t, err)
	require.Equal(t, entity.Circle{X: 330, Y: 250, Radius: 160}, c)
}
