package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogNonReleased(t *testing.T) {
	require := require.New(t)
	SetDebug(true)
	defer SetDebug(false)
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)
	p := NewPool(newCounter)

	g1 := p.Get()
	g2 := p.Get()

	LogNonReleased(logger)
	require.Equal(2, logs.Len())
	for _, entry := range logs.All() {
		require.Equal("borrowed from pool but not released", entry.Message)
		require.Equal(int64(1), entry.ContextMap()["amount"])
		require.Contains(entry.ContextMap()["stack"], "TestLogNonReleased")
	}

	g1.Release()
	g2.Release()

	logs.TakeAll()
	LogNonReleased(logger)
	require.Zero(logs.Len())
}

func TestGetObjectsInUse_RegisteredCounter(t *testing.T) {
	require := require.New(t)
	external := uint64(0)
	RegisterObjectsInUseCounter(func() uint64 { return external })

	external = 2
	require.Equal(uint64(2), GetObjectsInUse())

	p := NewPool(newCounter)
	g := p.Get()
	require.Equal(uint64(3), GetObjectsInUse())

	g.Release()
	external = 0
	require.Zero(GetObjectsInUse())
}
