package port

import "laser-trainer/internal/domain/entity"

// SpotDetector ищет лазерную точку на кадре
type SpotDetector interface {
	// Detect возвращает центр самой крупной яркой области или NotDetected
	Detect(frame entity.Frame) entity.Detection
}
