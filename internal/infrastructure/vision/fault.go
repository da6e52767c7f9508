package vision

import (
	"sync"

	"go.uber.org/zap"

	"laser-trainer/internal/infrastructure/logging"
)

// faultLog пишет первую ошибку обработки кадра в лог и считает остальные
type faultLog struct {
	logger *zap.Logger
	msg    string

	mu     sync.Mutex
	count  uint64
	logged bool
}

func newFaultLog(logger *zap.Logger, msg string) *faultLog {
	return &faultLog{logger: logging.OrNop(logger), msg: msg}
}

func (f *faultLog) report(seq uint64, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.count++
	if f.logged {
		return
	}
	f.logged = true
	f.logger.Warn(f.msg, zap.Uint64("sequence", seq), zap.Error(err))
}

// Count количество ошибок с момента создания
func (f *faultLog) Count() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.count
}
