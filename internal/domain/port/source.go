package port

import (
	"context"
	"errors"

	"laser-trainer/internal/domain/entity"
)

// ErrEndOfStream источник кадров исчерпан или не читается
var ErrEndOfStream = errors.New("end of frame stream")

// FrameSource поставляет кадры по запросу
type FrameSource interface {
	// Next блокируется до следующего кадра. При потере источника возвращает ErrEndOfStream.
	Next(ctx context.Context) (entity.Frame, error)

	// Close освобождает устройство
	Close() error
}
