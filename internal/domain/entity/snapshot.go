package entity

import "time"

// Snapshot неизменяемая копия состояния сессии для слоя отображения
type Snapshot struct {
	SessionID    string
	Detected     bool        // точка найдена на последнем кадре
	HasHit       bool        // было хотя бы одно обнаружение
	LastPosition TargetPoint // последняя позиция в координатах мишени
	LastScore    Score
	LastHitAt    time.Time
	ShowHit      bool
	ErrorMessage string
	ErrorAt      time.Time
	Indicator    Indicator
	Shots        int
	TotalScore   int
	Frames       uint64
}

// HitMarkerVisible сообщает, нужно ли ещё показывать отметку попадания
func (s Snapshot) HitMarkerVisible(now time.Time, window time.Duration) bool {
	return s.ShowHit && now.Sub(s.LastHitAt) < window
}

// ErrorVisible сообщает, нужно ли ещё показывать сообщение об ошибке
func (s Snapshot) ErrorVisible(now time.Time, window time.Duration) bool {
	return s.ErrorMessage != "" && now.Sub(s.ErrorAt) < window
}
