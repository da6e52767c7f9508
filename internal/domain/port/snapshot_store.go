package port

import "laser-trainer/internal/domain/entity"

// SnapshotStore хранилище последнего снимка сессии.
// Пишет только цикл обработки, читают HTTP и бот.
type SnapshotStore interface {
	// Save заменяет текущий снимок
	Save(snap entity.Snapshot)

	// Latest возвращает последний сохранённый снимок
	Latest() entity.Snapshot
}
