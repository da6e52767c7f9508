package storage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"laser-trainer/internal/domain/entity"
)

func TestMemorySnapshotStore_Initial(t *testing.T) {
	s := NewMemorySnapshotStore("abc")
	snap := s.Latest()
	require.Equal(t, "abc", snap.SessionID)
	require.Equal(t, entity.IndicatorOff, snap.Indicator)
}

func TestMemorySnapshotStore_SaveConcurrentReaders(t *testing.T) {
	s := NewMemorySnapshotStore("abc")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Latest()
			}
		}()
	}
	for i := 1; i <= 100; i++ {
		s.Save(entity.Snapshot{SessionID: "abc", Frames: uint64(i)})
	}
	wg.Wait()

	require.Equal(t, uint64(100), s.Latest().Frames)
}
