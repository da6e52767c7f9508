package scoring

import (
	"errors"
	"math"

	"laser-trainer/internal/domain/entity"
)

// TargetSpec геометрия мишени в координатах отображения
type TargetSpec struct {
	Radius     float64 // внешний радиус мишени
	BullRadius float64 // радиус десятки
	RingWidth  float64 // ширина кольца
	Rings      int     // количество колец, номер центрального
}

// Scorer считает очки по расстоянию от центра мишени
type Scorer struct {
	spec TargetSpec
}

// NewScorer проверяет геометрию и создаёт счётчик очков
func NewScorer(spec TargetSpec) (*Scorer, error) {
	switch {
	case spec.Rings <= 0:
		return nil, errors.New("ring table is empty")
	case spec.Radius <= 0:
		return nil, errors.New("target radius must be positive")
	case spec.RingWidth <= 0:
		return nil, errors.New("ring width must be positive")
	case spec.BullRadius < 0 || spec.BullRadius > spec.Radius:
		return nil, errors.New("bullseye radius must be within target radius")
	}
	return &Scorer{spec: spec}, nil
}

// Score оценивает точку относительно центра мишени.
// Обе границы (десятка и внешний радиус) включительные.
func (s *Scorer) Score(p, center entity.TargetPoint) (entity.Score, entity.Indicator) {
	distance := p.DistanceTo(center)
	if distance > s.spec.Radius {
		return entity.Miss(), entity.IndicatorOutside
	}
	if distance <= s.spec.BullRadius {
		return entity.Ring(s.spec.Rings), entity.IndicatorCenterHit
	}
	ring := s.spec.Rings - int(math.Floor(distance/s.spec.RingWidth))
	return entity.Ring(clamp(ring, 1, s.spec.Rings)), entity.IndicatorNearCenter
}

// RingRadii возвращает радиусы колец от внешнего (1) к центральному.
// Кольца с неположительным радиусом пропускаются.
func (s *Scorer) RingRadii() []float64 {
	radii := make([]float64, 0, s.spec.Rings)
	for i := 1; i <= s.spec.Rings; i++ {
		r := s.spec.Radius - float64(i-1)*s.spec.RingWidth
		if r <= 0 {
			break
		}
		radii = append(radii, r)
	}
	return radii
}

// Spec возвращает геометрию мишени
func (s *Scorer) Spec() TargetSpec {
	return s.spec
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
