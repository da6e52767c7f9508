package entity

// Detection результат поиска лазерной точки на одном кадре
type Detection struct {
	Found bool       // точка найдена
	Point FramePoint // центр точки в пикселях кадра
	Area  int        // площадь точки в пикселях
}

// NotDetected пустой результат: на кадре нечего оценивать
func NotDetected() Detection {
	return Detection{}
}

// Detected результат с найденной точкой
func Detected(p FramePoint, area int) Detection {
	return Detection{Found: true, Point: p, Area: area}
}
