package scoring

import (
	"errors"
	"fmt"

	"laser-trainer/internal/domain/entity"
)

// ErrZeroRadius калибровочная окружность с нулевым радиусом
var ErrZeroRadius = errors.New("calibration radius must be non-zero")

// Mapper переводит координаты кадра в координаты мишени.
// Масштаб по обеим осям один и тот же (tr/sr), поправки на соотношение сторон кадра нет.
type Mapper struct {
	src entity.Circle
	dst entity.Circle
}

// NewMapper создаёт преобразование из калибровочной окружности кадра в окружность мишени.
func NewMapper(src, dst entity.Circle) (*Mapper, error) {
	if src.Radius == 0 {
		return nil, fmt.Errorf("source circle: %w", ErrZeroRadius)
	}
	return &Mapper{src: src, dst: dst}, nil
}

// MapToTarget переводит точку кадра в пространство мишени
func (m *Mapper) MapToTarget(p entity.FramePoint) entity.TargetPoint {
	return entity.TargetPoint{
		X: m.dst.X + (p.X-m.src.X)*m.dst.Radius/m.src.Radius,
		Y: m.dst.Y + (p.Y-m.src.Y)*m.dst.Radius/m.src.Radius,
	}
}

// Center возвращает центр мишени
func (m *Mapper) Center() entity.TargetPoint {
	return entity.TargetPoint{X: m.dst.X, Y: m.dst.Y}
}

// Source возвращает калибровочную окружность кадра
func (m *Mapper) Source() entity.Circle {
	return m.src
}
