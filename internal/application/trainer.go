package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/port"
	"laser-trainer/internal/domain/scene"
	"laser-trainer/internal/domain/scoring"
	"laser-trainer/internal/domain/session"
	"laser-trainer/internal/infrastructure/logging"
)

const statsLogInterval = 5 * time.Second

// ErrStopped пользователь попросил завершить работу
var ErrStopped = errors.New("stop requested")

// CalibrationFunc возвращает калибровочную окружность для кадра w x h
type CalibrationFunc func(w, h int) (entity.Circle, error)

// Options параметры цикла тренировки
type Options struct {
	Calibrate CalibrationFunc
	Target    entity.Circle
	Layout    scene.Layout
	Rate      float64 // кадров в секунду
	Preview   bool
}

// Trainer цикл обработки кадров: источник -> детектор -> пересчёт координат -> очки -> состояние -> отображение.
// Работает в одной горутине, состояние сессии меняет только он.
type Trainer struct {
	source   port.FrameSource
	detector port.SpotDetector
	scorer   *scoring.Scorer
	mapper   *scoring.Mapper
	session  *session.Session
	store    port.SnapshotStore
	logger   *zap.Logger
	opts     Options
	clock    func() time.Time

	sinks      []port.PresentationSink
	indicators []port.IndicatorSink
	publishers []port.ShotPublisher
	observers  []port.PositionObserver

	preview bool
	stats   Stats
}

// NewTrainer собирает цикл тренировки
func NewTrainer(source port.FrameSource, detector port.SpotDetector, scorer *scoring.Scorer, store port.SnapshotStore, logger *zap.Logger, opts Options) *Trainer {
	id := ""
	if store != nil {
		id = store.Latest().SessionID
	}
	if id == "" {
		id = uuid.NewString()
	}
	return &Trainer{
		source:   source,
		detector: detector,
		scorer:   scorer,
		session:  session.New(id),
		store:    store,
		logger:   logging.OrNop(logger),
		opts:     opts,
		clock:    time.Now,
		preview:  opts.Preview,
	}
}

// AddSink добавляет вывод сцены
func (t *Trainer) AddSink(s port.PresentationSink) { t.sinks = append(t.sinks, s) }

// AddIndicator добавляет физические индикаторы
func (t *Trainer) AddIndicator(s port.IndicatorSink) { t.indicators = append(t.indicators, s) }

// AddPublisher добавляет получателя выстрелов
func (t *Trainer) AddPublisher(p port.ShotPublisher) { t.publishers = append(t.publishers, p) }

// AddObserver добавляет получателя позиции точки
func (t *Trainer) AddObserver(o port.PositionObserver) { t.observers = append(t.observers, o) }

// SetClock подменяет часы (для тестов)
func (t *Trainer) SetClock(clock func() time.Time) { t.clock = clock }

// Snapshot возвращает текущее состояние сессии
func (t *Trainer) Snapshot() entity.Snapshot { return t.session.Snapshot() }

// Stats возвращает счётчики цикла
func (t *Trainer) Stats() Stats { return t.stats }

// Step обрабатывает один кадр
func (t *Trainer) Step(ctx context.Context) error {
	frame, err := t.source.Next(ctx)
	if err != nil {
		return err
	}
	start := time.Now()
	now := t.clock()

	if t.mapper == nil {
		if err := t.calibrate(frame); err != nil {
			return err
		}
	}

	det := t.detector.Detect(frame)
	prev := t.session.Indicator()
	shot := t.session.Update(det, t.mapper, t.scorer, now)
	snap := t.session.Snapshot()
	if t.store != nil {
		t.store.Save(snap)
	}

	if det.Found {
		for _, o := range t.observers {
			o.ObservePosition(snap.LastPosition)
		}
	}
	if snap.Indicator != prev {
		for _, s := range t.indicators {
			s.Signal(snap.Indicator)
		}
	}
	if shot {
		t.publishShot(ctx, snap, now)
	}

	sc := scene.Build(snap, now, t.opts.Layout)
	sc.Preview = t.preview
	sc.Overlay = scene.NewOverlay(t.mapper.Source(), t.opts.Layout, det)
	for _, s := range t.sinks {
		cmd, err := s.Present(sc, frame)
		if err != nil {
			return fmt.Errorf("present frame: %w", err)
		}
		switch cmd {
		case scene.CommandTogglePreview:
			t.preview = !t.preview
		case scene.CommandQuit:
			return ErrStopped
		}
	}

	t.stats.record(det.Found, time.Since(start))
	return nil
}

// Run крутит цикл с частотой opts.Rate. Если кадр обрабатывается дольше бюджета,
// цикл просто идёт медленнее. Завершается по ctx, по команде пользователя
// (nil) или по потере источника (ErrEndOfStream).
func (t *Trainer) Run(ctx context.Context) error {
	budget := time.Duration(float64(time.Second) / t.opts.Rate)
	logTicker := time.NewTicker(statsLogInterval)
	defer logTicker.Stop()

	t.logger.Info("training loop started",
		zap.String("session_id", t.session.Snapshot().SessionID),
		zap.Float64("rate", t.opts.Rate))

	for {
		if ctx.Err() != nil {
			return nil
		}
		start := time.Now()

		err := t.Step(ctx)
		switch {
		case err == nil:
		case errors.Is(err, ErrStopped):
			t.logger.Info("stop requested by user")
			return nil
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, port.ErrEndOfStream):
			t.logger.Info("frame source ended", zap.Error(err), zap.Uint64("frames", t.stats.Frames))
			return err
		default:
			return err
		}

		select {
		case <-logTicker.C:
			t.logStats()
		default:
		}

		if wait := budget - time.Since(start); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil
			case <-timer.C:
			}
		}
	}
}

// Close освобождает источник кадров и выводы
func (t *Trainer) Close() error {
	var errs []error
	if err := t.source.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close source: %w", err))
	}
	for _, s := range t.sinks {
		if c, ok := s.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (t *Trainer) calibrate(frame entity.Frame) error {
	w, h := frame.Size()
	src, err := t.opts.Calibrate(w, h)
	if err != nil {
		return fmt.Errorf("calibrate from %dx%d frame: %w", w, h, err)
	}
	m, err := scoring.NewMapper(src, t.opts.Target)
	if err != nil {
		return fmt.Errorf("calibrate from %dx%d frame: %w", w, h, err)
	}
	t.mapper = m
	t.logger.Info("calibration set",
		zap.Int("frame_width", w),
		zap.Int("frame_height", h),
		zap.Float64("center_x", src.X),
		zap.Float64("center_y", src.Y),
		zap.Float64("radius", src.Radius))
	return nil
}

func (t *Trainer) publishShot(ctx context.Context, snap entity.Snapshot, now time.Time) {
	shot := entity.ShotEvent{
		ID:         uuid.NewString(),
		SessionID:  snap.SessionID,
		Number:     snap.Shots,
		Position:   snap.LastPosition,
		Score:      snap.LastScore.Value(),
		Miss:       snap.LastScore.IsMiss(),
		Indicator:  snap.Indicator,
		TotalScore: snap.TotalScore,
		At:         now,
	}
	t.logger.Info("shot",
		zap.Int("number", shot.Number),
		zap.String("score", snap.LastScore.String()),
		zap.String("indicator", string(shot.Indicator)),
		zap.Float64("x", shot.Position.X),
		zap.Float64("y", shot.Position.Y))

	for _, p := range t.publishers {
		if err := p.PublishShot(ctx, shot); err != nil {
			t.logger.Warn("publish shot failed", zap.Error(err))
		}
	}
}

func (t *Trainer) logStats() {
	s := t.stats
	t.logger.Debug("loop.stats",
		zap.Uint64("frames", s.Frames),
		zap.Uint64("detections", s.Detections),
		zap.Duration("avg_frame", s.AvgFrame()))
}
