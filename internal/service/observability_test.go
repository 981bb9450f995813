package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver_WritesRecord(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf, LogFormatText)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "advance",
		Duration: 3 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"session": "abc"},
	})
	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "use_case=advance")
	assert.Contains(t, out, "session=abc")
}

func TestLogUseCaseObserver_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf, LogFormatText)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "advance", Err: errors.New("gate closed")})
	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `error="gate closed"`)
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil, LogFormatJSON))
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
}

func TestLogUseCaseObserver_JSON(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf, LogFormatJSON)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "set-final",
		Success: true,
		Fields:  map[string]any{"question": 2, "option": "C"},
	})

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "service_use_case", rec["msg"])
	assert.Equal(t, "set-final", rec["use_case"])
	assert.Equal(t, "C", rec["option"])
	assert.InDelta(t, 2, rec["question"], 0)
}

func TestLogUseCaseObserver_SortsFields(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf, LogFormatText)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "jump",
		Success: true,
		Fields:  map[string]any{"session": "s1", "cursor": 4, "phase": "TESTING"},
	})
	out := buf.String()
	assert.Less(t, strings.Index(out, "cursor="), strings.Index(out, "phase="))
	assert.Less(t, strings.Index(out, "phase="), strings.Index(out, "session="))
}
