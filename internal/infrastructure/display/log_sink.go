package display

import (
	"go.uber.org/zap"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/scene"
	"laser-trainer/internal/infrastructure/logging"
)

// LogSink пишет изменения сцены в лог. Используется без окна (headless).
type LogSink struct {
	logger *zap.Logger
	last   sceneKey
}

type sceneKey struct {
	score string
	laser string
	lamps scene.Lamps
	err   string
}

// NewLogSink создаёт текстовый вывод сцены
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logging.OrNop(logger)}
}

// Present логирует сцену, только если поменялся счёт, статус лазера, лампы или сообщение.
func (s *LogSink) Present(sc scene.Scene, frame entity.Frame) (scene.Command, error) {
	key := sceneKey{score: sc.Score, laser: sc.Laser, lamps: sc.Lamps, err: sc.Error}
	if key == s.last {
		return scene.CommandNone, nil
	}
	s.last = key

	fields := []zap.Field{
		zap.String("score", sc.Score),
		zap.String("laser", sc.Laser),
		zap.Bool("outside", sc.Lamps.Outside),
		zap.Bool("near_center", sc.Lamps.NearCenter),
		zap.Bool("center_hit", sc.Lamps.CenterHit),
		zap.Uint64("frame", frame.Sequence),
	}
	if sc.Marker != nil {
		fields = append(fields, zap.Float64("x", sc.Marker.X), zap.Float64("y", sc.Marker.Y))
	}
	if sc.Error != "" {
		fields = append(fields, zap.String("error", sc.Error))
	}
	s.logger.Info("scene", fields...)
	return scene.CommandNone, nil
}
