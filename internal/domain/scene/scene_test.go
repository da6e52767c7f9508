package scene

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"laser-trainer/internal/domain/entity"
)

func testLayout() Layout {
	return Layout{
		Center:       entity.TargetPoint{X: 512, Y: 384},
		RingRadii:    []float64{200, 181, 162, 143, 124, 105, 86, 67, 48, 29},
		BullRadius:   30,
		TargetRadius: 200,
		HitMarker:    500 * time.Millisecond,
		ErrorMessage: 3 * time.Second,
	}
}

func TestBuild_Initial(t *testing.T) {
	sc := Build(entity.Snapshot{Indicator: entity.IndicatorOff}, time.Unix(0, 0), testLayout())

	require.Len(t, sc.Rings, 10)
	require.Equal(t, 1, sc.Rings[0].Number)
	require.True(t, sc.Rings[9].Bull)
	require.False(t, sc.Rings[8].Bull)
	require.Equal(t, Lamps{}, sc.Lamps)
	require.Equal(t, "Score: 0", sc.Score)
	require.Equal(t, "NOT DETECTED", sc.Laser)
	require.Nil(t, sc.Marker)
	require.Empty(t, sc.Error)
}

func TestBuild_MarkerAndErrorExpire(t *testing.T) {
	hit := time.Unix(100, 0)
	snap := entity.Snapshot{
		Detected:     true,
		HasHit:       true,
		LastPosition: entity.TargetPoint{X: 700, Y: 384},
		LastScore:    entity.Miss(),
		LastHitAt:    hit,
		ShowHit:      true,
		ErrorMessage: "ERROR: Laser outside target bounds",
		ErrorAt:      hit,
		Indicator:    entity.IndicatorOutside,
	}

	sc := Build(snap, hit.Add(100*time.Millisecond), testLayout())
	require.NotNil(t, sc.Marker)
	require.Equal(t, 700.0, sc.Marker.X)
	require.Equal(t, snap.ErrorMessage, sc.Error)
	require.Equal(t, "Score: MISS", sc.Score)
	require.Equal(t, "DETECTED", sc.Laser)
	require.True(t, sc.Lamps.Outside)

	sc = Build(snap, hit.Add(time.Second), testLayout())
	require.Nil(t, sc.Marker)
	require.Equal(t, snap.ErrorMessage, sc.Error)

	sc = Build(snap, hit.Add(4*time.Second), testLayout())
	require.Empty(t, sc.Error)
}

func TestNewOverlay(t *testing.T) {
	cal := entity.Circle{X: 320, Y: 240, Radius: 160}
	o := NewOverlay(cal, testLayout(), entity.Detected(entity.FramePoint{X: 300, Y: 200}, 9))
	require.Equal(t, cal, o.Calibration)
	require.Equal(t, 24.0, o.BullRadius)
	require.NotNil(t, o.Spot)

	o = NewOverlay(cal, testLayout(), entity.NotDetected())
	require.Nil(t, o.Spot)
}
