//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"laser-trainer/internal/domain/entity"
)

// Camera заглушка камеры (без OpenCV)
type Camera struct{}

// OpenCamera возвращает ошибку, если сборка без тега gocv.
func OpenCamera(device int, mirror bool) (*Camera, error) {
	_ = device
	_ = mirror
	return nil, ErrGoCVDisabled
}

// Next возвращает ошибку, если сборка без тега gocv.
func (c *Camera) Next(ctx context.Context) (entity.Frame, error) {
	_ = ctx
	return entity.Frame{}, ErrGoCVDisabled
}

// Close ничего не делает
func (c *Camera) Close() error {
	return nil
}
