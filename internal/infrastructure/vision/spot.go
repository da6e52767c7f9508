package vision

import (
	"image"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/port"
)

const (
	DefaultThreshold = 220 // почти белый, верхние ~14% диапазона
	DefaultMinArea   = 5   // меньше считается шумом матрицы
)

// SpotDetector детектор лазерной точки без OpenCV.
// Порог яркости -> связные области (8-связность) -> самая крупная область -> центр масс.
type SpotDetector struct {
	Threshold uint8
	MinArea   int
}

// NewSpotDetector создаёт детектор с порогом яркости и минимальной площадью
func NewSpotDetector(threshold uint8, minArea int) *SpotDetector {
	return &SpotDetector{Threshold: threshold, MinArea: minArea}
}

// Detect возвращает центр самой крупной яркой области площадью не меньше MinArea.
// При равных площадях побеждает первая найденная при построчном обходе.
func (d *SpotDetector) Detect(frame entity.Frame) entity.Detection {
	if frame.Image == nil {
		return entity.NotDetected()
	}
	gray, bounds := luminance(frame.Image)
	blob, ok := Largest(Blobs(gray, bounds, d.Threshold), d.MinArea)
	if !ok {
		return entity.NotDetected()
	}
	p, ok := blob.Centroid()
	if !ok {
		return entity.NotDetected()
	}
	return entity.Detected(p, blob.Area)
}

// Blobs размечает связные области пикселей с яркостью >= threshold.
// Координаты пикселей берутся в системе bounds.
func Blobs(gray []uint8, bounds image.Rectangle, threshold uint8) []entity.Blob {
	w, h := bounds.Dx(), bounds.Dy()
	visited := make([]bool, w*h)
	var blobs []entity.Blob
	var stack []int

	for i, v := range gray {
		if v < threshold || visited[i] {
			continue
		}

		var blob entity.Blob
		visited[i] = true
		stack = append(stack[:0], i)
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			px, py := idx%w, idx/w
			blob.Add(bounds.Min.X+px, bounds.Min.Y+py)

			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := px+dx, py+dy
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					n := ny*w + nx
					if !visited[n] && gray[n] >= threshold {
						visited[n] = true
						stack = append(stack, n)
					}
				}
			}
		}
		blobs = append(blobs, blob)
	}
	return blobs
}

// Largest выбирает область со строго наибольшей площадью среди областей не меньше minArea
func Largest(blobs []entity.Blob, minArea int) (entity.Blob, bool) {
	var best entity.Blob
	found := false
	for _, b := range blobs {
		if b.Area < minArea {
			continue
		}
		if !found || b.Area > best.Area {
			best = b
			found = true
		}
	}
	return best, found
}

// luminance переводит кадр в одноканальную яркость с весами BT.601
func luminance(img image.Image) ([]uint8, image.Rectangle) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	gray := make([]uint8, w*h)

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w]
			copy(gray[y*w:(y+1)*w], row)
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w*4]
			for x := 0; x < w; x++ {
				gray[y*w+x] = luma(uint32(row[x*4]), uint32(row[x*4+1]), uint32(row[x*4+2]))
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				gray[y*w+x] = luma(r>>8, g>>8, bl>>8)
			}
		}
	}
	return gray, b
}

func luma(r, g, b uint32) uint8 {
	return uint8((19595*r + 38470*g + 7471*b + 1<<15) >> 16)
}

// Проверка реализации интерфейса
var _ port.SpotDetector = (*SpotDetector)(nil)
