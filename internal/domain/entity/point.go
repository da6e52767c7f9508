package entity

import "math"

// FramePoint координата в пикселях кадра камеры
type FramePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TargetPoint координата в пространстве отображения мишени
type TargetPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo возвращает евклидово расстояние до другой точки мишени
func (p TargetPoint) DistanceTo(o TargetPoint) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Circle окружность: калибровочная в кадре или мишень на экране
type Circle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}
