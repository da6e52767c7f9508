package port

import (
	"context"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/scene"
)

// PresentationSink рисует сцену. Состояние сессии только читает.
type PresentationSink interface {
	// Present отображает сцену и кадр камеры, возвращает команду пользователя
	Present(sc scene.Scene, frame entity.Frame) (scene.Command, error)
}

// IndicatorSink физические индикаторы. Ошибки устройства не выходят наружу.
type IndicatorSink interface {
	Signal(indicator entity.Indicator)
}

// ShotPublisher публикует события выстрелов
type ShotPublisher interface {
	PublishShot(ctx context.Context, shot entity.ShotEvent) error
}

// PositionObserver получает позицию точки на каждом кадре с обнаружением
type PositionObserver interface {
	ObservePosition(p entity.TargetPoint)
}
