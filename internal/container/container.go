package container

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"laser-trainer/config"
	httpapi "laser-trainer/internal/api/http"
	"laser-trainer/internal/api/telegram"
	app "laser-trainer/internal/application"
	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/port"
	"laser-trainer/internal/domain/scene"
	"laser-trainer/internal/domain/scoring"
	"laser-trainer/internal/infrastructure/broker"
	"laser-trainer/internal/infrastructure/display"
	"laser-trainer/internal/infrastructure/logging"
	"laser-trainer/internal/infrastructure/serial"
	"laser-trainer/internal/infrastructure/storage"
	"laser-trainer/internal/infrastructure/vision"
)

// Container собирает цикл тренировки и все необязательные выходы из конфигурации.
// Необязательный выход, который не удалось открыть, пропускается с предупреждением.
type Container struct {
	Trainer *app.Trainer
	Store   *storage.MemorySnapshotStore
	Server  *httpapi.Server
	Hub     *httpapi.Hub
	Bot     *telegram.Bot

	cfg     *config.Config
	logger  *zap.Logger
	closers []func() error
	wg      sync.WaitGroup
}

// New открывает источник кадров и выходы
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	logger = logging.OrNop(logger)
	c := &Container{cfg: cfg, logger: logger}

	source, err := newSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("open frame source: %w", err)
	}

	scorer, err := scoring.NewScorer(scoring.TargetSpec{
		Radius:     cfg.Target.Radius,
		BullRadius: cfg.Target.BullRadius,
		RingWidth:  cfg.Target.RingWidth,
		Rings:      cfg.Target.Rings,
	})
	if err != nil {
		_ = source.Close()
		return nil, err
	}

	c.Store = storage.NewMemorySnapshotStore(uuid.NewString())
	target := cfg.TargetCircle()
	c.Trainer = app.NewTrainer(source, c.newDetector(), scorer, c.Store, logger, app.Options{
		Calibrate: cfg.CalibrationCircle,
		Target:    target,
		Layout: scene.Layout{
			Center:       entity.TargetPoint{X: target.X, Y: target.Y},
			RingRadii:    scorer.RingRadii(),
			BullRadius:   cfg.Target.BullRadius,
			TargetRadius: cfg.Target.Radius,
			HitMarker:    cfg.Loop.HitMarker,
			ErrorMessage: cfg.Loop.ErrorMessage,
		},
		Rate:    cfg.Loop.Rate,
		Preview: cfg.Display.Preview,
	})

	c.Trainer.AddSink(display.NewLogSink(logger))
	if cfg.Display.Enabled {
		w, err := display.NewWindow(cfg.Display.Title, cfg.Display.Width, cfg.Display.Height)
		if err != nil {
			logger.Warn("display disabled", zap.Error(err))
		} else {
			c.Trainer.AddSink(w)
		}
	}

	if cfg.Serial.Port != "" {
		led, err := serial.Open(cfg.Serial.Port, cfg.Serial.Baud, logger)
		if err != nil {
			logger.Warn("led indicators disabled", zap.String("port", cfg.Serial.Port), zap.Error(err))
		} else {
			c.Trainer.AddIndicator(led)
			c.closers = append(c.closers, led.Close)
		}
	}

	if cfg.MQTT.Broker != "" {
		pub, err := broker.Connect(ctx, broker.Options{
			Broker:   cfg.MQTT.Broker,
			Topic:    cfg.MQTT.Topic,
			ClientID: cfg.MQTT.ClientID,
			QoS:      1,
		}, logger)
		if err != nil {
			logger.Warn("mqtt publishing disabled", zap.String("broker", cfg.MQTT.Broker), zap.Error(err))
		} else {
			c.Trainer.AddPublisher(pub)
			c.closers = append(c.closers, pub.Close)
		}
	}

	if cfg.Telegram.Token != "" {
		bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.ChatID, c.Store, logger)
		if err != nil {
			logger.Warn("telegram disabled", zap.Error(err))
		} else {
			c.Bot = bot
			c.Trainer.AddPublisher(bot)
		}
	}

	if cfg.HTTP.Addr != "" {
		c.Hub = httpapi.NewHub(logger)
		c.Server = httpapi.NewServer(cfg.HTTP.Mode, c.Store, c.Hub, logger)
		c.Trainer.AddObserver(c.Hub)
	}

	return c, nil
}

// Start запускает фоновые сервисы: HTTP и Telegram
func (c *Container) Start(ctx context.Context) {
	if c.Server != nil {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			if err := c.Server.Run(ctx, c.cfg.HTTP.Addr); err != nil {
				c.logger.Error("http server stopped", zap.Error(err))
			}
		}()
	}
	if c.Bot != nil {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			if err := c.Bot.Run(ctx); err != nil {
				c.logger.Error("telegram bot stopped", zap.Error(err))
			}
		}()
	}
}

// Close ждёт фоновые сервисы (ctx из Start уже должен быть отменён) и закрывает ресурсы
func (c *Container) Close() error {
	c.wg.Wait()

	errs := []error{c.Trainer.Close()}
	for _, closeFn := range c.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

func (c *Container) newDetector() port.SpotDetector {
	th := uint8(c.cfg.Detection.Threshold)
	if c.cfg.Detection.GoCV {
		d, err := vision.NewGoCVDetector(th, c.cfg.Detection.MinArea, c.logger)
		if err == nil {
			return d
		}
		c.logger.Warn("opencv detector unavailable, using built-in", zap.Error(err))
	}
	return vision.NewSpotDetector(th, c.cfg.Detection.MinArea)
}

func newSource(cfg *config.Config) (port.FrameSource, error) {
	if cfg.Camera.ReplayDir != "" {
		s, err := vision.NewDirSource(cfg.Camera.ReplayDir, cfg.Detection.Mirror)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	cam, err := vision.OpenCamera(cfg.Camera.Device, cfg.Detection.Mirror)
	if err != nil {
		return nil, err
	}
	return cam, nil
}
