package vision

import (
	"image"
	"image/color"
)

// synthFrame создаёт однотонный RGBA кадр
func synthFrame(w, h int, base byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = base, base, base, 255
	}
	return img
}

// paint закрашивает пиксели заданной яркостью
func paint(img *image.RGBA, lum byte, pts ...image.Point) {
	for _, p := range pts {
		i := img.PixOffset(p.X, p.Y)
		img.Pix[i], img.Pix[i+1], img.Pix[i+2] = lum, lum, lum
	}
}

// rect возвращает все пиксели прямоугольника [x0,x1)x[y0,y1)
func rect(x0, y0, x1, y1 int) []image.Point {
	var pts []image.Point
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			pts = append(pts, image.Pt(x, y))
		}
	}
	return pts
}

// ring8 восемь соседей точки (cx, cy) без самой точки: площадь 8, центр (cx, cy)
func ring8(cx, cy int) []image.Point {
	var pts []image.Point
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			pts = append(pts, image.Pt(cx+dx, cy+dy))
		}
	}
	return pts
}

func colorGray(v uint8) color.Gray {
	return color.Gray{Y: v}
}
