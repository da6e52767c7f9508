package vision

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFaultLog_LogsFirstCountsAll(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f := newFaultLog(zap.New(core), "frame conversion failed")

	f.report(1, errors.New("bad frame"))
	f.report(2, errors.New("bad frame"))
	f.report(3, errors.New("bad frame"))

	require.Equal(t, uint64(3), f.Count())
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "frame conversion failed", entry.Message)
	require.Equal(t, uint64(1), entry.ContextMap()["sequence"])
}

func TestFaultLog_NilLogger(t *testing.T) {
	f := newFaultLog(nil, "x")
	f.report(1, errors.New("bad"))
	require.Equal(t, uint64(1), f.Count())
}
