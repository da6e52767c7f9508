package entity

import "strconv"

// Score результат оценки выстрела. Ring == 0 означает промах.
type Score struct {
	Ring int
}

// Miss промах: точка за внешним кольцом мишени
func Miss() Score {
	return Score{}
}

// Ring попадание в кольцо n
func Ring(n int) Score {
	return Score{Ring: n}
}

// IsMiss сообщает, что выстрел мимо мишени
func (s Score) IsMiss() bool {
	return s.Ring == 0
}

// Value возвращает очки выстрела (0 для промаха)
func (s Score) Value() int {
	return s.Ring
}

func (s Score) String() string {
	if s.IsMiss() {
		return "MISS"
	}
	return strconv.Itoa(s.Ring)
}

// Indicator зона попадания для индикаторов
type Indicator string

const (
	IndicatorOff        Indicator = "off"         // До первого попадания
	IndicatorOutside    Indicator = "outside"     // Мимо мишени
	IndicatorNearCenter Indicator = "near_center" // В мишени, но не в десятке
	IndicatorCenterHit  Indicator = "center_hit"  // В десятке
)

// Lamps возвращает состояние трёх ламп: вне мишени, рядом с центром, центр.
// Горит не больше одной.
func (i Indicator) Lamps() (outside, nearCenter, centerHit bool) {
	switch i {
	case IndicatorOutside:
		return true, false, false
	case IndicatorNearCenter:
		return false, true, false
	case IndicatorCenterHit:
		return false, false, true
	default:
		return false, false, false
	}
}
