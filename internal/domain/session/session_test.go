package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/scoring"
)

func newPipeline(t *testing.T) (*scoring.Mapper, *scoring.Scorer) {
	t.Helper()
	m, err := scoring.NewMapper(
		entity.Circle{X: 320, Y: 240, Radius: 160},
		entity.Circle{X: 512, Y: 384, Radius: 200},
	)
	require.NoError(t, err)
	s, err := scoring.NewScorer(scoring.TargetSpec{Radius: 200, BullRadius: 30, RingWidth: 19, Rings: 10})
	require.NoError(t, err)
	return m, s
}

func TestNew_IndicatorsOff(t *testing.T) {
	s := New("id")
	snap := s.Snapshot()
	require.Equal(t, entity.IndicatorOff, snap.Indicator)
	require.False(t, snap.HasHit)
	require.False(t, snap.ShowHit)
	require.Equal(t, "id", snap.SessionID)
}

func TestUpdate_CenterHit(t *testing.T) {
	m, sc := newPipeline(t)
	s := New("id")
	now := time.Unix(10, 0)

	shot := s.Update(entity.Detected(entity.FramePoint{X: 320, Y: 240}, 8), m, sc, now)
	require.True(t, shot)

	snap := s.Snapshot()
	require.True(t, snap.Detected)
	require.Equal(t, entity.TargetPoint{X: 512, Y: 384}, snap.LastPosition)
	require.Equal(t, entity.Ring(10), snap.LastScore)
	require.Equal(t, entity.IndicatorCenterHit, snap.Indicator)
	require.Equal(t, now, snap.LastHitAt)
	require.True(t, snap.ShowHit)
	require.Empty(t, snap.ErrorMessage)
	require.Equal(t, 1, snap.Shots)
	require.Equal(t, 10, snap.TotalScore)
}

func TestUpdate_NotDetectedKeepsState(t *testing.T) {
	m, sc := newPipeline(t)
	s := New("id")
	now := time.Unix(10, 0)
	s.Update(entity.Detected(entity.FramePoint{X: 360, Y: 240}, 8), m, sc, now)
	before := s.Snapshot()

	shot := s.Update(entity.NotDetected(), m, sc, now.Add(time.Second))
	require.False(t, shot)

	after := s.Snapshot()
	require.False(t, after.Detected)
	require.Equal(t, before.LastScore, after.LastScore)
	require.Equal(t, before.LastPosition, after.LastPosition)
	require.Equal(t, before.Indicator, after.Indicator)
	require.Equal(t, before.LastHitAt, after.LastHitAt)
}

func TestUpdate_MissSetsErrorMessage(t *testing.T) {
	m, sc := newPipeline(t)
	s := New("id")
	now := time.Unix(10, 0)

	// 320+170 -> 512 + 170*200/160 = 724.5, расстояние 212.5 > 200
	s.Update(entity.Detected(entity.FramePoint{X: 490, Y: 240}, 8), m, sc, now)

	snap := s.Snapshot()
	require.True(t, snap.LastScore.IsMiss())
	require.Equal(t, entity.IndicatorOutside, snap.Indicator)
	require.Equal(t, OutsideMessage, snap.ErrorMessage)
	require.Equal(t, now, snap.ErrorAt)
	require.Equal(t, 1, snap.Shots)
	require.Equal(t, 0, snap.TotalScore)
}

func TestUpdate_ShotCountedOnRisingEdge(t *testing.T) {
	m, sc := newPipeline(t)
	s := New("id")
	now := time.Unix(10, 0)
	center := entity.Detected(entity.FramePoint{X: 320, Y: 240}, 8)

	require.True(t, s.Update(center, m, sc, now))
	require.False(t, s.Update(center, m, sc, now.Add(33*time.Millisecond)))
	require.False(t, s.Update(entity.NotDetected(), m, sc, now.Add(66*time.Millisecond)))
	require.True(t, s.Update(center, m, sc, now.Add(99*time.Millisecond)))

	snap := s.Snapshot()
	require.Equal(t, 2, snap.Shots)
	require.Equal(t, 20, snap.TotalScore)
	require.Equal(t, uint64(4), snap.Frames)
}

func TestSnapshot_NilSession(t *testing.T) {
	var s *Session
	require.Equal(t, entity.IndicatorOff, s.Snapshot().Indicator)
	require.Equal(t, entity.IndicatorOff, s.Indicator())
}
