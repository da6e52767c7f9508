package entity

import (
	"image"
	"time"
)

// Frame кадр с камеры. После захвата не изменяется.
type Frame struct {
	Image      image.Image
	CapturedAt time.Time
	Sequence   uint64
}

// Size возвращает ширину и высоту кадра
func (f Frame) Size() (w, h int) {
	if f.Image == nil {
		return 0, 0
	}
	b := f.Image.Bounds()
	return b.Dx(), b.Dy()
}
