package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestProgress_LogsStages(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := NewProgress(zap.New(core))

	p.Start("checksum", 2)
	p.Step("users")
	p.Step("orders")
	p.Finish()

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "stage started", entries[0].Message)
	assert.Equal(t, "orders", entries[2].ContextMap()["item"])
	assert.Equal(t, int64(2), entries[2].ContextMap()["done"])
	assert.Equal(t, "stage finished", entries[3].Message)
	assert.Equal(t, "checksum", entries[3].ContextMap()["stage"])
}
