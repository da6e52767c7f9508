package serial

import (
	"fmt"
	"io"
	"sync"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/port"
	"laser-trainer/internal/infrastructure/logging"
)

// DefaultBaud скорость порта контроллера с лампами
const DefaultBaud = 9600

// LEDSink отправляет состояние ламп на контроллер по последовательному порту.
// После первой ошибки записи переходит в режим без устройства и больше не пишет.
type LEDSink struct {
	mu       sync.Mutex
	w        io.WriteCloser
	logger   *zap.Logger
	degraded bool
}

// Open открывает порт контроллера
func Open(portName string, baud int, logger *zap.Logger) (*LEDSink, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	p, err := serial.Open(portName, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", portName, err)
	}
	return NewLEDSink(p, logger), nil
}

// NewLEDSink создаёт вывод ламп поверх открытого порта
func NewLEDSink(w io.WriteCloser, logger *zap.Logger) *LEDSink {
	return &LEDSink{w: w, logger: logging.OrNop(logger)}
}

// Command формирует команду вида "LED:R1Y0G0\n"
func Command(indicator entity.Indicator) string {
	outside, near, center := indicator.Lamps()
	return fmt.Sprintf("LED:R%dY%dG%d\n", bit(outside), bit(near), bit(center))
}

// Signal отправляет состояние ламп. Ошибки устройства не фатальны.
func (s *LEDSink) Signal(indicator entity.Indicator) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.degraded {
		return
	}
	if _, err := s.w.Write([]byte(Command(indicator))); err != nil {
		s.degraded = true
		s.logger.Warn("led controller unavailable, running without hardware indicators", zap.Error(err))
	}
}

// Degraded сообщает, что устройство отвалилось
func (s *LEDSink) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.degraded
}

// Close закрывает порт
func (s *LEDSink) Close() error {
	return s.w.Close()
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Проверка реализации интерфейса
var _ port.IndicatorSink = (*LEDSink)(nil)
