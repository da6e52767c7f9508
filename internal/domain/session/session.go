package session

import (
	"time"

	"laser-trainer/internal/domain/entity"
)

// OutsideMessage сообщение при попадании за пределы мишени
const OutsideMessage = "ERROR: Laser outside target bounds"

// Mapper переводит точку кадра в координаты мишени
type Mapper interface {
	MapToTarget(p entity.FramePoint) entity.TargetPoint
	Center() entity.TargetPoint
}

// Scorer оценивает точку мишени
type Scorer interface {
	Score(p, center entity.TargetPoint) (entity.Score, entity.Indicator)
}

// Session состояние единственной активной тренировки.
// Меняется только через Update, один раз на кадр.
type Session struct {
	id        string
	detected  bool
	hasHit    bool
	position  entity.TargetPoint
	score     entity.Score
	lastHitAt time.Time
	showHit   bool
	errMsg    string
	errAt     time.Time
	indicator entity.Indicator
	shots     int
	total     int
	frames    uint64
}

// New создаёт пустую сессию: индикаторы выключены до первого попадания
func New(id string) *Session {
	return &Session{id: id, indicator: entity.IndicatorOff}
}

// Update применяет результат обработки кадра.
// Без обнаружения меняется только флаг detected: позиция, очки и индикатор остаются прежними.
// Возвращает true, если кадр начал новый выстрел (точка появилась после отсутствия).
func (s *Session) Update(det entity.Detection, mapper Mapper, scorer Scorer, now time.Time) bool {
	s.frames++
	wasDetected := s.detected
	s.detected = det.Found
	if !det.Found {
		return false
	}

	p := mapper.MapToTarget(det.Point)
	score, indicator := scorer.Score(p, mapper.Center())

	s.hasHit = true
	s.position = p
	s.score = score
	s.lastHitAt = now
	s.showHit = true
	s.indicator = indicator
	if score.IsMiss() {
		s.errMsg = OutsideMessage
		s.errAt = now
	}

	if wasDetected {
		return false
	}
	s.shots++
	s.total += score.Value()
	return true
}

// Indicator возвращает текущее состояние индикаторов
func (s *Session) Indicator() entity.Indicator {
	if s == nil {
		return entity.IndicatorOff
	}
	return s.indicator
}

// Snapshot возвращает копию состояния для отображения
func (s *Session) Snapshot() entity.Snapshot {
	if s == nil {
		return entity.Snapshot{Indicator: entity.IndicatorOff}
	}
	return entity.Snapshot{
		SessionID:    s.id,
		Detected:     s.detected,
		HasHit:       s.hasHit,
		LastPosition: s.position,
		LastScore:    s.score,
		LastHitAt:    s.lastHitAt,
		ShowHit:      s.showHit,
		ErrorMessage: s.errMsg,
		ErrorAt:      s.errAt,
		Indicator:    s.indicator,
		Shots:        s.shots,
		TotalScore:   s.total,
		Frames:       s.frames,
	}
}
