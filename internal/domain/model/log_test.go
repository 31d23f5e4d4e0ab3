package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEntry_WithField(t *testing.T) {
	tests := []struct {
		name  string
		entry *LogEntry
		key   string
		value interface{}
		want  map[string]interface{}
	}{
		{
			name:  "nil fields are initialised",
			entry: &LogEntry{},
			key:   "servings",
			value: 4,
			want:  map[string]interface{}{"servings": 4},
		},
		{
			name:  "existing fields are kept",
			entry: &LogEntry{Fields: map[string]interface{}{"pan": "wok"}},
			key:   "servings",
			value: 4,
			want:  map[string]interface{}{"pan": "wok", "servings": 4},
		},
		{
			name:  "same key is overwritten",
			entry: &LogEntry{Fields: map[string]interface{}{"servings": 3}},
			key:   "servings",
			value: 5,
			want:  map[string]interface{}{"servings": 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.entry.WithField(tt.key, tt.value)
			assert.Same(t, tt.entry, got)
			assert.Equal(t, tt.want, got.Fields)
		})
	}
}

func TestLogEntry_WithFields(t *testing.T) {
	entry := (&LogEntry{ActionType: ActionPlan}).
		WithField("pan_id", int64(3)).
		WithFields(map[string]interface{}{"net": 1000.0, "servings": 4})

	assert.Equal(t, map[string]interface{}{
		"pan_id":   int64(3),
		"net":      1000.0,
		"servings": 4,
	}, entry.Fields)

	empty := (&LogEntry{}).WithFields(nil)
	assert.NotNil(t, empty.Fields)
	assert.Empty(t, empty.Fields)
}
