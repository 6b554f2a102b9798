package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessage_AppendsLine(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	ev := SeatsBookedEvent{
		EventID:     "e-1",
		ShowingID:   3,
		ShowingName: "Dune",
		Seats:       2,
		Remaining:   3,
		BookedBy:    "abc",
		Role:        "guest",
		BookedAt:    "2026-01-02T15:04:05Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	require.NoError(t, HandleMessage(dir, body))
	require.NoError(t, HandleMessage(dir, body))

	data, err := os.ReadFile(filepath.Join(dir, BookingLogFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `movie="Dune"`)
	assert.Contains(t, lines[0], "seats=2")
	assert.Contains(t, lines[0], "remaining=3")
}

func TestHandleMessage_RejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, HandleMessage(dir, []byte("{not json")))
	assert.Error(t, HandleMessage(dir, []byte(`{"seats":1}`)))
	_, err := os.Stat(filepath.Join(dir, BookingLogFile))
	assert.True(t, os.IsNotExist(err))
}
