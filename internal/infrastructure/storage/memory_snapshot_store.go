package storage

import (
	"sync"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/port"
)

// MemorySnapshotStore in-memory хранилище последнего снимка сессии
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	snap entity.Snapshot
}

// NewMemorySnapshotStore создаёт хранилище с пустым снимком
func NewMemorySnapshotStore(sessionID string) *MemorySnapshotStore {
	return &MemorySnapshotStore{
		snap: entity.Snapshot{SessionID: sessionID, Indicator: entity.IndicatorOff},
	}
}

// Save заменяет текущий снимок
func (r *MemorySnapshotStore) Save(snap entity.Snapshot) {
	r.mu.Lock()
	r.snap = snap
	r.mu.Unlock()
}

// Latest возвращает последний снимок
func (r *MemorySnapshotStore) Latest() entity.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snap
}

// Проверка реализации интерфейса
var _ port.SnapshotStore = (*MemorySnapshotStore)(nil)
