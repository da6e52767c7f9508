//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"image"
	"image/color"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/port"
)

// ErrGoCVDisabled сборка без тега gocv
var ErrGoCVDisabled = errors.New("gocv build tag is not enabled")

// GoCVDetector детектор лазерной точки на OpenCV
type GoCVDetector struct {
	Threshold uint8
	MinArea   int

	faults *faultLog
}

// NewGoCVDetector создаёт детектор на OpenCV
func NewGoCVDetector(threshold uint8, minArea int, logger *zap.Logger) (*GoCVDetector, error) {
	return &GoCVDetector{
		Threshold: threshold,
		MinArea:   minArea,
		faults:    newFaultLog(logger, "opencv frame conversion failed"),
	}, nil
}

// Faults количество кадров, которые не удалось передать в OpenCV
func (d *GoCVDetector) Faults() uint64 {
	return d.faults.Count()
}

// Detect ищет самую крупную яркую область внешним контуром и считает её центр по моментам.
func (d *GoCVDetector) Detect(frame entity.Frame) entity.Detection {
	if frame.Image == nil {
		return entity.NotDetected()
	}
	mat, err := gocv.ImageToMatRGB(frame.Image)
	if err != nil {
		d.faults.report(frame.Sequence, err)
		return entity.NotDetected()
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	// OpenCV сравнивает строго (>), яркость целая, поэтому порог на единицу ниже.
	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(gray, &thresh, float32(d.Threshold)-1, 255, gocv.ThresholdBinary)

	contours := gocv.FindContours(thresh, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	bestArea := 0
	var bestMask gocv.Mat
	for i := 0; i < contours.Size(); i++ {
		// Пикселей в области не больше, чем в её описанном прямоугольнике.
		box := gocv.BoundingRect(contours.At(i))
		if limit := box.Dx() * box.Dy(); limit < d.MinArea || limit <= bestArea {
			continue
		}
		mask := gocv.Zeros(thresh.Rows(), thresh.Cols(), gocv.MatTypeCV8U)
		gocv.DrawContours(&mask, contours, i, color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)
		// Пиксели области: залитый контур, пересечённый с бинарной маской.
		gocv.BitwiseAnd(mask, thresh, &mask)
		area := gocv.CountNonZero(mask)
		if area < d.MinArea || area <= bestArea {
			mask.Close()
			continue
		}
		if bestArea > 0 {
			bestMask.Close()
		}
		bestArea = area
		bestMask = mask
	}
	if bestArea == 0 {
		return entity.NotDetected()
	}
	defer bestMask.Close()

	m := gocv.Moments(bestMask, true)
	if m["m00"] == 0 {
		return entity.NotDetected()
	}
	b := frame.Image.Bounds()
	p := entity.FramePoint{
		X: float64(b.Min.X) + m["m10"]/m["m00"],
		Y: float64(b.Min.Y) + m["m01"]/m["m00"],
	}
	return entity.Detected(p, bestArea)
}

// DrawOverlay рисует разметку выравнивания на кадре камеры
func DrawOverlay(mat *gocv.Mat, calibration entity.Circle, bullRadius float64, spot *entity.FramePoint) {
	center := image.Pt(int(calibration.X), int(calibration.Y))
	gocv.Circle(mat, center, int(calibration.Radius), color.RGBA{G: 255, A: 255}, 2)
	gocv.Circle(mat, center, int(bullRadius), color.RGBA{R: 255, A: 255}, 2)
	if spot != nil {
		gocv.Circle(mat, image.Pt(int(spot.X), int(spot.Y)), 10, color.RGBA{R: 255, G: 255, A: 255}, -1)
	}
}

// Проверка реализации интерфейса
var _ port.SpotDetector = (*GoCVDetector)(nil)
