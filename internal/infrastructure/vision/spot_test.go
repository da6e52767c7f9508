package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"laser-trainer/internal/domain/entity"
)

func TestSpotDetector_EmptyFrame(t *testing.T) {
	d := NewSpotDetector(DefaultThreshold, DefaultMinArea)
	det := d.Detect(entity.Frame{Image: synthFrame(64, 48, 40)})
	require.False(t, det.Found)

	require.False(t, d.Detect(entity.Frame{}).Found)
}

func TestSpotDetector_SubThresholdBlobsIgnored(t *testing.T) {
	img := synthFrame(64, 48, 40)
	paint(img, 255, rect(10, 10, 12, 12)...) // 4 пикселя
	paint(img, 255, image.Pt(40, 40))

	det := NewSpotDetector(DefaultThreshold, DefaultMinArea).Detect(entity.Frame{Image: img})
	require.False(t, det.Found)
}

func TestSpotDetector_LargestBlobWins(t *testing.T) {
	img := synthFrame(64, 48, 40)
	paint(img, 255, rect(2, 2, 5, 4)...)     // 6 пикселей
	paint(img, 230, rect(30, 20, 34, 24)...) // 16 пикселей, центр (31.5, 21.5)
	paint(img, 255, rect(50, 40, 53, 43)...) // 9 пикселей

	det := NewSpotDetector(DefaultThreshold, DefaultMinArea).Detect(entity.Frame{Image: img})
	require.True(t, det.Found)
	require.Equal(t, 16, det.Area)
	require.Equal(t, entity.FramePoint{X: 31.5, Y: 21.5}, det.Point)
}

func TestSpotDetector_ThresholdInclusive(t *testing.T) {
	img := synthFrame(32, 32, 0)
	paint(img, 220, rect(10, 10, 13, 13)...)
	require.True(t, NewSpotDetector(220, 5).Detect(entity.Frame{Image: img}).Found)
	require.False(t, NewSpotDetector(221, 5).Detect(entity.Frame{Image: img}).Found)
}

func TestSpotDetector_DiagonalPixelsConnected(t *testing.T) {
	img := synthFrame(32, 32, 0)
	paint(img, 255, image.Pt(1, 1), image.Pt(2, 2), image.Pt(3, 3), image.Pt(4, 4), image.Pt(5, 5))

	det := NewSpotDetector(DefaultThreshold, DefaultMinArea).Detect(entity.Frame{Image: img})
	require.True(t, det.Found)
	require.Equal(t, 5, det.Area)
	require.Equal(t, entity.FramePoint{X: 3, Y: 3}, det.Point)
}

func TestSpotDetector_Idempotent(t *testing.T) {
	img := synthFrame(640, 480, 30)
	paint(img, 255, ring8(320, 240)...)
	frame := entity.Frame{Image: img}
	d := NewSpotDetector(DefaultThreshold, DefaultMinArea)

	first := d.Detect(frame)
	second := d.Detect(frame)
	require.True(t, first.Found)
	require.Equal(t, 8, first.Area)
	require.Equal(t, entity.FramePoint{X: 320, Y: 240}, first.Point)
	require.Equal(t, first, second)
}

func TestSpotDetector_OffsetBoundsAndGray(t *testing.T) {
	img := image.NewGray(image.Rect(100, 100, 120, 120))
	for _, p := range rect(105, 110, 108, 113) {
		img.SetGray(p.X, p.Y, colorGray(250))
	}

	det := NewSpotDetector(DefaultThreshold, DefaultMinArea).Detect(entity.Frame{Image: img})
	require.True(t, det.Found)
	require.Equal(t, entity.FramePoint{X: 106, Y: 111}, det.Point)
}

func TestLargest_TieKeepsFirst(t *testing.T) {
	a := entity.Blob{Area: 6, SumX: 6, SumY: 6}
	b := entity.Blob{Area: 6, SumX: 60, SumY: 60}
	best, ok := Largest([]entity.Blob{a, b}, 5)
	require.True(t, ok)
	require.Equal(t, a, best)

	_, ok = Largest(nil, 5)
	require.False(t, ok)
}
