package scene

import (
	"fmt"
	"time"

	"laser-trainer/internal/domain/entity"
)

// Command действие пользователя, полученное от окна отображения
type Command int

const (
	CommandNone Command = iota
	CommandTogglePreview
	CommandQuit
)

// Layout геометрия мишени и окна времени для временных отметок
type Layout struct {
	Center       entity.TargetPoint
	RingRadii    []float64 // от внешнего кольца (1) к центральному
	BullRadius   float64
	TargetRadius float64
	HitMarker    time.Duration
	ErrorMessage time.Duration
}

// Ring кольцо мишени для отрисовки
type Ring struct {
	Number int
	Radius float64
	Bull   bool
}

// Lamps три индикатора, горит не больше одного
type Lamps struct {
	Outside    bool
	NearCenter bool
	CenterHit  bool
}

// Overlay разметка поверх кадра камеры для выравнивания
type Overlay struct {
	Calibration entity.Circle
	BullRadius  float64
	Spot        *entity.FramePoint
}

// Scene всё, что нужно нарисовать на одном кадре
type Scene struct {
	Center   entity.TargetPoint
	Rings    []Ring
	Lamps    Lamps
	Score    string
	Laser    string
	Detected bool
	Marker   *entity.TargetPoint // nil, если отметка попадания истекла
	Error    string              // пусто, если сообщение истекло
	Preview  bool
	Overlay  Overlay
}

// Build собирает сцену из снимка состояния. Истечение временных отметок
// считается здесь по now, в снимке хранятся только метки времени.
func Build(snap entity.Snapshot, now time.Time, l Layout) Scene {
	sc := Scene{
		Center:   l.Center,
		Rings:    make([]Ring, 0, len(l.RingRadii)),
		Detected: snap.Detected,
		Laser:    "NOT DETECTED",
	}
	for i, r := range l.RingRadii {
		n := i + 1
		sc.Rings = append(sc.Rings, Ring{Number: n, Radius: r, Bull: n == len(l.RingRadii)})
	}

	sc.Lamps.Outside, sc.Lamps.NearCenter, sc.Lamps.CenterHit = snap.Indicator.Lamps()

	if snap.Detected {
		sc.Laser = "DETECTED"
	}
	if snap.HasHit {
		sc.Score = fmt.Sprintf("Score: %s", snap.LastScore)
	} else {
		sc.Score = "Score: 0"
	}
	if snap.HitMarkerVisible(now, l.HitMarker) {
		p := snap.LastPosition
		sc.Marker = &p
	}
	if snap.ErrorVisible(now, l.ErrorMessage) {
		sc.Error = snap.ErrorMessage
	}
	return sc
}

// NewOverlay строит разметку кадра: калибровочная окружность, десятка
// в масштабе калибровки и найденная точка.
func NewOverlay(calibration entity.Circle, l Layout, det entity.Detection) Overlay {
	o := Overlay{Calibration: calibration}
	if l.TargetRadius > 0 {
		o.BullRadius = calibration.Radius * l.BullRadius / l.TargetRadius
	}
	if det.Found {
		p := det.Point
		o.Spot = &p
	}
	return o
}
