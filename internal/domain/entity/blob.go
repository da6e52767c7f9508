package entity

// Blob связная область ярких пикселей
type Blob struct {
	Area int     // количество пикселей
	SumX float64 // сумма X координат пикселей (первый момент)
	SumY float64 // сумма Y координат пикселей
}

// Add добавляет пиксель в область
func (b *Blob) Add(x, y int) {
	b.Area++
	b.SumX += float64(x)
	b.SumY += float64(y)
}

// Centroid возвращает центр масс области.
// Для пустой области возвращает false.
func (b Blob) Centroid() (FramePoint, bool) {
	if b.Area == 0 {
		return FramePoint{}, false
	}
	n := float64(b.Area)
	return FramePoint{X: b.SumX / n, Y: b.SumY / n}, true
}
