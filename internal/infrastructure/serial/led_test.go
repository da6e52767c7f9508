package serial

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"laser-trainer/internal/domain/entity"
)

type fakePort struct {
	bytes.Buffer
	fail   bool
	writes int
	closed bool
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.writes++
	if p.fail {
		return 0, errors.New("device unplugged")
	}
	return p.Buffer.Write(b)
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func TestCommand(t *testing.T) {
	require.Equal(t, "LED:R1Y0G0\n", Command(entity.IndicatorOutside))
	require.Equal(t, "LED:R0Y1G0\n", Command(entity.IndicatorNearCenter))
	require.Equal(t, "LED:R0Y0G1\n", Command(entity.IndicatorCenterHit))
	require.Equal(t, "LED:R0Y0G0\n", Command(entity.IndicatorOff))
}

func TestLEDSink_Signal(t *testing.T) {
	p := &fakePort{}
	s := NewLEDSink(p, nil)

	s.Signal(entity.IndicatorCenterHit)
	s.Signal(entity.IndicatorOutside)
	require.Equal(t, "LED:R0Y0G1\nLED:R1Y0G0\n", p.String())
	require.False(t, s.Degraded())

	require.NoError(t, s.Close())
	require.True(t, p.closed)
}

func TestLEDSink_DegradesOnceOnWriteError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := &fakePort{fail: true}
	s := NewLEDSink(p, zap.New(core))

	s.Signal(entity.IndicatorCenterHit)
	s.Signal(entity.IndicatorOutside)
	s.Signal(entity.IndicatorNearCenter)

	require.True(t, s.Degraded())
	require.Equal(t, 1, p.writes)
	require.Equal(t, 1, logs.Len())
}
