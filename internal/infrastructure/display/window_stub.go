//go:build !gocv
// +build !gocv

package display

import (
	"errors"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/scene"
)

// Window заглушка окна (без OpenCV)
type Window struct{}

// NewWindow возвращает ошибку, если сборка без тега gocv.
func NewWindow(title string, width, height int) (*Window, error) {
	_ = title
	_, _ = width, height
	return nil, errors.New("gocv build tag is not enabled")
}

// Present возвращает ошибку, если сборка без тега gocv.
func (w *Window) Present(sc scene.Scene, frame entity.Frame) (scene.Command, error) {
	_ = sc
	_ = frame
	return scene.CommandNone, errors.New("gocv build tag is not enabled")
}

// Close ничего не делает
func (w *Window) Close() error {
	return nil
}
