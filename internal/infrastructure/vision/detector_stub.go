//go:build !gocv
// +build !gocv

package vision

import (
	"errors"

	"go.uber.org/zap"

	"laser-trainer/internal/domain/entity"
)

// ErrGoCVDisabled сборка без тега gocv
var ErrGoCVDisabled = errors.New("gocv build tag is not enabled")

// GoCVDetector заглушка детектора (без OpenCV)
type GoCVDetector struct {
	Threshold uint8
	MinArea   int
}

// NewGoCVDetector возвращает ошибку, если сборка без тега gocv.
func NewGoCVDetector(threshold uint8, minArea int, logger *zap.Logger) (*GoCVDetector, error) {
	return nil, ErrGoCVDisabled
}

// Detect ничего не находит в сборке без тега gocv.
func (d *GoCVDetector) Detect(frame entity.Frame) entity.Detection {
	_ = frame
	return entity.NotDetected()
}
