package app

import "time"

// Stats счётчики цикла обработки
type Stats struct {
	Frames     uint64
	Detections uint64
	Busy       time.Duration // суммарное время обработки кадров
}

func (s *Stats) record(detected bool, took time.Duration) {
	s.Frames++
	if detected {
		s.Detections++
	}
	s.Busy += took
}

// AvgFrame среднее время обработки кадра
func (s Stats) AvgFrame() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.Busy / time.Duration(s.Frames)
}
