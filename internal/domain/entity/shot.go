package entity

import "time"

// ShotEvent выстрел: первое обнаружение точки после её отсутствия
type ShotEvent struct {
	ID         string      `json:"id"`
	SessionID  string      `json:"session_id"`
	Number     int         `json:"number"`
	Position   TargetPoint `json:"position"`
	Score      int         `json:"score"`
	Miss       bool        `json:"miss"`
	Indicator  Indicator   `json:"indicator"`
	TotalScore int         `json:"total_score"`
	At         time.Time   `json:"at"`
}
