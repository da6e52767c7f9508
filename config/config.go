package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"laser-trainer/internal/domain/entity"
)

// ErrInvalid ошибка конфигурации, фатальна до старта цикла
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Detection   DetectionConfig   `mapstructure:"detection"`
	Calibration CalibrationConfig `mapstructure:"calibration"`
	Target      TargetConfig      `mapstructure:"target"`
	Loop        LoopConfig        `mapstructure:"loop"`
	Camera      CameraConfig      `mapstructure:"camera"`
	Display     DisplayConfig     `mapstructure:"display"`
	Serial      SerialConfig      `mapstructure:"serial"`
	MQTT        MQTTConfig        `mapstructure:"mqtt"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Telegram    TelegramConfig    `mapstructure:"telegram"`
	Log         LogConfig         `mapstructure:"log"`
}

type DetectionConfig struct {
	Threshold int  `mapstructure:"threshold"` // порог яркости 0..255
	MinArea   int  `mapstructure:"min_area"`  // минимальная площадь точки в пикселях
	Mirror    bool `mapstructure:"mirror"`    // отражать кадр по горизонтали
	GoCV      bool `mapstructure:"gocv"`      // детектор на OpenCV вместо встроенного
}

// CalibrationConfig окружность мишени в кадре камеры. Radius == 0: взять из первого кадра.
type CalibrationConfig struct {
	CenterX float64 `mapstructure:"center_x"`
	CenterY float64 `mapstructure:"center_y"`
	Radius  float64 `mapstructure:"radius"`
}

type TargetConfig struct {
	CenterX    float64 `mapstructure:"center_x"`
	CenterY    float64 `mapstructure:"center_y"`
	Radius     float64 `mapstructure:"radius"`
	BullRadius float64 `mapstructure:"bull_radius"`
	RingWidth  float64 `mapstructure:"ring_width"`
	Rings      int     `mapstructure:"rings"`
}

type LoopConfig struct {
	Rate         float64       `mapstructure:"rate"`
	HitMarker    time.Duration `mapstructure:"hit_marker"`
	ErrorMessage time.Duration `mapstructure:"error_message"`
}

type CameraConfig struct {
	Device    int    `mapstructure:"device"`
	ReplayDir string `mapstructure:"replay_dir"` // каталог с кадрами вместо камеры
}

type DisplayConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Preview bool   `mapstructure:"preview"`
	Title   string `mapstructure:"title"`
	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`
}

type SerialConfig struct {
	Port string `mapstructure:"port"`
	Baud int    `mapstructure:"baud"`
}

type MQTTConfig struct {
	Broker   string `mapstructure:"broker"`
	Topic    string `mapstructure:"topic"`
	ClientID string `mapstructure:"client_id"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"`
}

type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

// Default возвращает значения по умолчанию
func Default() *Config {
	return &Config{
		Detection: DetectionConfig{Threshold: 220, MinArea: 5, Mirror: true},
		Target: TargetConfig{
			CenterX:    512,
			CenterY:    384,
			Radius:     200,
			BullRadius: 30,
			RingWidth:  19,
			Rings:      10,
		},
		Loop:    LoopConfig{Rate: 30, HitMarker: 500 * time.Millisecond, ErrorMessage: 3 * time.Second},
		Display: DisplayConfig{Enabled: true, Preview: true, Title: "Laser Target Detection System", Width: 1024, Height: 768},
		Serial:  SerialConfig{Baud: 9600},
		MQTT:    MQTTConfig{Topic: "laser/shots", ClientID: "laser-trainer"},
		HTTP:    HTTPConfig{Addr: ":8765", Mode: "release"},
		Log:     LogConfig{Mode: "debug"},
	}
}

// Load читает .env (если есть), переменные окружения LASER_* и файл из LASER_CONFIG.
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix("LASER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := os.Getenv("LASER_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Telegram.Token == "" {
		cfg.Telegram.Token = os.Getenv("TELEGRAM_TOKEN")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("detection.threshold", d.Detection.Threshold)
	v.SetDefault("detection.min_area", d.Detection.MinArea)
	v.SetDefault("detection.mirror", d.Detection.Mirror)
	v.SetDefault("detection.gocv", d.Detection.GoCV)

	v.SetDefault("calibration.center_x", d.Calibration.CenterX)
	v.SetDefault("calibration.center_y", d.Calibration.CenterY)
	v.SetDefault("calibration.radius", d.Calibration.Radius)

	v.SetDefault("target.center_x", d.Target.CenterX)
	v.SetDefault("target.center_y", d.Target.CenterY)
	v.SetDefault("target.radius", d.Target.Radius)
	v.SetDefault("target.bull_radius", d.Target.BullRadius)
	v.SetDefault("target.ring_width", d.Target.RingWidth)
	v.SetDefault("target.rings", d.Target.Rings)

	v.SetDefault("loop.rate", d.Loop.Rate)
	v.SetDefault("loop.hit_marker", d.Loop.HitMarker)
	v.SetDefault("loop.error_message", d.Loop.ErrorMessage)

	v.SetDefault("camera.device", d.Camera.Device)
	v.SetDefault("camera.replay_dir", d.Camera.ReplayDir)

	v.SetDefault("display.enabled", d.Display.Enabled)
	v.SetDefault("display.preview", d.Display.Preview)
	v.SetDefault("display.title", d.Display.Title)
	v.SetDefault("display.width", d.Display.Width)
	v.SetDefault("display.height", d.Display.Height)

	v.SetDefault("serial.port", d.Serial.Port)
	v.SetDefault("serial.baud", d.Serial.Baud)

	v.SetDefault("mqtt.broker", d.MQTT.Broker)
	v.SetDefault("mqtt.topic", d.MQTT.Topic)
	v.SetDefault("mqtt.client_id", d.MQTT.ClientID)

	v.SetDefault("http.addr", d.HTTP.Addr)
	v.SetDefault("http.mode", d.HTTP.Mode)

	v.SetDefault("telegram.token", d.Telegram.Token)
	v.SetDefault("telegram.chat_id", d.Telegram.ChatID)

	v.SetDefault("log.mode", d.Log.Mode)
}

// Validate проверяет параметры, без которых цикл не может стартовать
func (c *Config) Validate() error {
	switch {
	case c.Detection.Threshold < 0 || c.Detection.Threshold > 255:
		return fmt.Errorf("%w: detection.threshold %d out of 0..255", ErrInvalid, c.Detection.Threshold)
	case c.Detection.MinArea < 0:
		return fmt.Errorf("%w: detection.min_area must not be negative", ErrInvalid)
	case c.Calibration.Radius < 0:
		return fmt.Errorf("%w: calibration.radius must not be negative", ErrInvalid)
	case c.Calibration.Radius > 0 && !c.Calibration.hasCenter():
		return fmt.Errorf("%w: calibration.radius set without calibration.center_x/center_y", ErrInvalid)
	case c.Calibration.Radius == 0 && c.Calibration.hasCenter():
		return fmt.Errorf("%w: calibration.center_x/center_y set without calibration.radius", ErrInvalid)
	case c.Target.Radius <= 0:
		return fmt.Errorf("%w: target.radius must be positive", ErrInvalid)
	case c.Target.RingWidth <= 0:
		return fmt.Errorf("%w: target.ring_width must be positive", ErrInvalid)
	case c.Target.Rings <= 0:
		return fmt.Errorf("%w: target.rings must be positive", ErrInvalid)
	case c.Target.BullRadius < 0 || c.Target.BullRadius > c.Target.Radius:
		return fmt.Errorf("%w: target.bull_radius must be within target.radius", ErrInvalid)
	case c.Loop.Rate <= 0:
		return fmt.Errorf("%w: loop.rate must be positive", ErrInvalid)
	}
	return nil
}

// hasCenter центр задан в конфигурации
func (c CalibrationConfig) hasCenter() bool {
	return c.CenterX != 0 || c.CenterY != 0
}

// CalibrationCircle возвращает калибровочную окружность для кадра w x h.
// Центр и радиус задаются вместе. Если не задано ничего: центр кадра и радиус min(w,h)/3.
func (c *Config) CalibrationCircle(w, h int) (entity.Circle, error) {
	if c.Calibration.Radius > 0 {
		if !c.Calibration.hasCenter() {
			return entity.Circle{}, fmt.Errorf("%w: calibration radius %.0f without center", ErrInvalid, c.Calibration.Radius)
		}
		return entity.Circle{X: c.Calibration.CenterX, Y: c.Calibration.CenterY, Radius: c.Calibration.Radius}, nil
	}
	r := min(w, h) / 3
	if r == 0 {
		return entity.Circle{}, fmt.Errorf("%w: cannot derive calibration from %dx%d frame", ErrInvalid, w, h)
	}
	return entity.Circle{X: float64(w / 2), Y: float64(h / 2), Radius: float64(r)}, nil
}

// TargetCircle возвращает окружность мишени на экране
func (c *Config) TargetCircle() entity.Circle {
	return entity.Circle{X: c.Target.CenterX, Y: c.Target.CenterY, Radius: c.Target.Radius}
}
