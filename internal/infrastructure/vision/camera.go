//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/port"
)

// Camera источник кадров с веб-камеры через OpenCV
type Camera struct {
	capture *gocv.VideoCapture
	mat     gocv.Mat
	mirror  bool
	seq     uint64
}

// OpenCamera открывает камеру по номеру устройства.
// mirror отражает кадр по горизонтали, чтобы движение совпадало с экраном.
func OpenCamera(device int, mirror bool) (*Camera, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", device, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("open camera %d: device is not opened", device)
	}
	return &Camera{capture: capture, mat: gocv.NewMat(), mirror: mirror}, nil
}

// Next читает следующий кадр. Ошибка чтения означает конец потока.
func (c *Camera) Next(ctx context.Context) (entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return entity.Frame{}, err
	}
	if ok := c.capture.Read(&c.mat); !ok || c.mat.Empty() {
		return entity.Frame{}, port.ErrEndOfStream
	}
	if c.mirror {
		gocv.Flip(c.mat, &c.mat, 1)
	}
	img, err := c.mat.ToImage()
	if err != nil {
		return entity.Frame{}, fmt.Errorf("convert frame: %w", err)
	}
	c.seq++
	return entity.Frame{Image: img, CapturedAt: time.Now(), Sequence: c.seq}, nil
}

// Close освобождает камеру
func (c *Camera) Close() error {
	c.mat.Close()
	return c.capture.Close()
}

// Проверка реализации интерфейса
var _ port.FrameSource = (*Camera)(nil)
