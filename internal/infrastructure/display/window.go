//go:build gocv
// +build gocv

package display

import (
	"errors"
	"image"
	"image/color"
	"strconv"

	"github.com/disintegration/gift"
	"gocv.io/x/gocv"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/scene"
	"laser-trainer/internal/infrastructure/vision"
)

var (
	white  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red    = color.RGBA{R: 255, A: 255}
	green  = color.RGBA{G: 255, A: 255}
	yellow = color.RGBA{R: 255, G: 255, A: 255}
	gray   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	blue   = color.RGBA{B: 255, A: 255}
)

// Window окно OpenCV: мишень, лампы, счёт и превью камеры
type Window struct {
	win    *gocv.Window
	width  int
	height int
}

// NewWindow открывает окно заданного размера
func NewWindow(title string, width, height int) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("window size must be positive")
	}
	win := gocv.NewWindow(title)
	win.ResizeWindow(width, height)
	return &Window{win: win, width: width, height: height}, nil
}

// Present рисует сцену и опрашивает клавиатуру: c переключает превью, ESC завершает работу.
func (w *Window) Present(sc scene.Scene, frame entity.Frame) (scene.Command, error) {
	canvas := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), w.height, w.width, gocv.MatTypeCV8UC3)
	defer canvas.Close()

	w.drawTarget(&canvas, sc)
	w.drawLamps(&canvas, sc.Lamps)
	w.drawInfo(&canvas, sc)
	if sc.Preview && frame.Image != nil {
		if err := w.drawPreview(&canvas, sc, frame); err != nil {
			return scene.CommandNone, err
		}
	}
	if sc.Marker != nil {
		p := image.Pt(int(sc.Marker.X), int(sc.Marker.Y))
		gocv.Circle(&canvas, p, 5, blue, -1)
		gocv.Circle(&canvas, p, 5, white, 1)
	}

	w.win.IMShow(canvas)
	return commandForKey(w.win.WaitKey(1)), nil
}

// Close закрывает окно
func (w *Window) Close() error {
	return w.win.Close()
}

func (w *Window) drawTarget(canvas *gocv.Mat, sc scene.Scene) {
	center := image.Pt(int(sc.Center.X), int(sc.Center.Y))
	for _, ring := range sc.Rings {
		c := white
		if ring.Bull {
			c = red
		}
		r := int(ring.Radius)
		gocv.Circle(canvas, center, r, c, 1)
		gocv.PutText(canvas, strconv.Itoa(ring.Number), image.Pt(center.X+r-10, center.Y-10), gocv.FontHersheyPlain, 1, white, 1)
	}
	gocv.Circle(canvas, center, 2, white, -1)
}

func (w *Window) drawLamps(canvas *gocv.Mat, lamps scene.Lamps) {
	items := []struct {
		on    bool
		color color.RGBA
		label string
		y     int
	}{
		{lamps.Outside, red, "Outside Target", 50},
		{lamps.NearCenter, yellow, "Near Center", 100},
		{lamps.CenterHit, green, "Center Hit", 150},
	}
	for _, it := range items {
		c := gray
		if it.on {
			c = it.color
		}
		p := image.Pt(50, it.y)
		gocv.Circle(canvas, p, 15, c, -1)
		gocv.Circle(canvas, p, 15, white, 1)
		gocv.PutText(canvas, it.label, image.Pt(75, it.y+5), gocv.FontHersheyPlain, 1, white, 1)
	}
}

func (w *Window) drawInfo(canvas *gocv.Mat, sc scene.Scene) {
	gocv.PutText(canvas, sc.Score, image.Pt(w.width-150, 30), gocv.FontHersheyPlain, 1.5, white, 2)

	status := green
	if !sc.Detected {
		status = red
	}
	gocv.PutText(canvas, "Laser: "+sc.Laser, image.Pt(w.width-250, 70), gocv.FontHersheyPlain, 1.5, status, 2)
	gocv.PutText(canvas, "Press 'C' to toggle camera view, 'ESC' to exit", image.Pt(w.width/2-180, w.height-15), gocv.FontHersheyPlain, 1, white, 1)

	if sc.Error != "" {
		gocv.PutText(canvas, sc.Error, image.Pt(w.width/2-150, 30), gocv.FontHersheyPlain, 1.5, red, 2)
	}
}

// drawPreview кладёт уменьшенный кадр с разметкой в правый нижний угол
func (w *Window) drawPreview(canvas *gocv.Mat, sc scene.Scene, frame entity.Frame) error {
	mat, err := gocv.ImageToMatRGB(frame.Image)
	if err != nil {
		return err
	}
	defer mat.Close()
	vision.DrawOverlay(&mat, sc.Overlay.Calibration, sc.Overlay.BullRadius, sc.Overlay.Spot)

	annotated, err := mat.ToImage()
	if err != nil {
		return err
	}
	previewW := w.width / 3
	g := gift.New(gift.Resize(previewW, 0, gift.LinearResampling))
	small := image.NewRGBA(g.Bounds(annotated.Bounds()))
	g.Draw(small, annotated)

	smallMat, err := gocv.ImageToMatRGB(small)
	if err != nil {
		return err
	}
	defer smallMat.Close()

	b := small.Bounds()
	x := w.width - b.Dx() - 10
	y := w.height - b.Dy() - 40
	if x < 0 || y < 0 {
		return nil
	}
	roi := canvas.Region(image.Rect(x, y, x+b.Dx(), y+b.Dy()))
	defer roi.Close()
	smallMat.CopyTo(&roi)
	return nil
}

