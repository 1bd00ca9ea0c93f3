package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{input: "debug", expected: LevelDebug},
		{input: "INFO", expected: LevelInfo},
		{input: "", expected: LevelInfo},
		{input: " warning ", expected: LevelWarn},
		{input: "error", expected: LevelError},
		{input: "verbose", expected: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestInitForCLI(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	Debug("Test", "hidden %d", 1)
	Info("Test", "visible %d", 2)
	Error("Test", errors.New("boom"), "failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible 2")
	assert.Contains(t, out, "subsystem=Test")
	assert.Contains(t, out, "error=boom")
}

func TestInitForStream(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	entries := InitForStream(LevelInfo, 4)
	Debug("Console", "filtered")
	Warn("Console", "careful %s", "now")

	select {
	case entry := <-entries:
		assert.Equal(t, LevelWarn, entry.Level)
		assert.Equal(t, "Console", entry.Subsystem)
		assert.Equal(t, "careful now", entry.Message)
		assert.Contains(t, entry.String(), "[Console] careful now")
	default:
		t.Fatal("expected a log entry on the stream")
	}

	// Overflowing the buffer must not block.
	for i := 0; i < 10; i++ {
		Info("Console", "entry %d", i)
	}

	CloseStream()
	count := 0
	for range entries {
		count++
	}
	assert.Equal(t, 4, count)

	Info("After", "back on cli")
	require.Contains(t, buf.String(), "back on cli")
	assert.NotContains(t, buf.String(), "careful now")
}
