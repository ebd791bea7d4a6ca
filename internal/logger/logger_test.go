package logger

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Prefix(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromCore(core, "[poll]")

	l.Info("started %s", "abc123")
	l.Warn("tick failed: %d", 429)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "[poll] started abc123", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "[poll] tick failed: 429", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestZapLogger_NoPrefix(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromCore(core, "")

	l.Error("boom")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "boom", logs.All()[0].Message)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"DEBUG", zapcore.DebugLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cfx.log")

	l, err := New(Config{Level: "debug", File: path}, "[test]")
	require.NoError(t, err)
	l.Info("hello")

	assert.FileExists(t, path)
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "verbose"}, "")
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	l := Noop()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %d", 1)
	l.Warn("warn %s", "two")

	assert.True(t, l.HasLevel("debug"))
	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("error"))

	msgs := l.Snapshot()
	require.Len(t, msgs, 2)
	assert.Equal(t, "warn two", msgs[1].Message)

	l.Clear()
	assert.Empty(t, l.Snapshot())
}

func TestBufferLogger_Concurrent(t *testing.T) {
	l := NewBufferLogger()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Info("msg %d", n)
		}(i)
	}
	wg.Wait()

	assert.Len(t, l.Snapshot(), 10)
}

func TestDefaultLogger(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	buf := NewBufferLogger()
	SetDefault(buf)
	Default().Info("via default")

	assert.True(t, buf.HasLevel("info"))
}
