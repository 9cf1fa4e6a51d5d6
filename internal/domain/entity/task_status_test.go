package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, name := range []string{"newTask", "active", "completed", "failed"} {
		st, ok := ParseStatus(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, st.String())
	}

	st, ok := ParseStatus("done")
	assert.False(t, ok)
	assert.Equal(t, StatusNew, st)

	// Status names are case sensitive.
	st, ok = ParseStatus("Active")
	assert.False(t, ok)
	assert.Equal(t, StatusNew, st)
}

func TestStatusFlagsRoundTrip(t *testing.T) {
	for _, st := range []Status{StatusNew, StatusActive, StatusCompleted, StatusFailed} {
		f := st.Flags()
		assert.Equal(t, 1, f.TrueCount(), st)
		got, changed := f.Normalize()
		assert.Equal(t, st, got)
		assert.False(t, changed)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		flags   StatusFlags
		want    Status
		changed bool
	}{
		{"all false", StatusFlags{}, StatusNew, true},
		{"single active", StatusFlags{Active: true}, StatusActive, false},
		{"completed beats active", StatusFlags{Active: true, Completed: true}, StatusCompleted, true},
		{"completed beats failed", StatusFlags{Failed: true, Completed: true}, StatusCompleted, true},
		{"failed beats active", StatusFlags{Active: true, Failed: true}, StatusFailed, true},
		{"failed beats newTask", StatusFlags{NewTask: true, Failed: true}, StatusFailed, true},
		{"active beats newTask", StatusFlags{NewTask: true, Active: true}, StatusActive, true},
		{"all true", StatusFlags{NewTask: true, Active: true, Completed: true, Failed: true}, StatusCompleted, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := tt.flags.Normalize()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

// Self-service updates resolve ambiguity the other way round: the earlier
// lifecycle stage wins.
func TestIntentStatus(t *testing.T) {
	assert.Equal(t, StatusNew, IntentStatus(StatusFlags{}))
	assert.Equal(t, StatusActive, IntentStatus(StatusFlags{Active: true}))
	assert.Equal(t, StatusCompleted, IntentStatus(StatusFlags{Completed: true}))
	assert.Equal(t, StatusFailed, IntentStatus(StatusFlags{Failed: true}))

	assert.Equal(t, StatusActive, IntentStatus(StatusFlags{Active: true, Completed: true}))
	assert.Equal(t, StatusNew, IntentStatus(StatusFlags{NewTask: true, Failed: true}))
	assert.Equal(t, StatusCompleted, IntentStatus(StatusFlags{Completed: true, Failed: true}))
}

func TestCountTasks(t *testing.T) {
	tasks := []Task{
		{Status: StatusActive},
		{Status: StatusActive},
		{Status: StatusNew},
		{Status: StatusCompleted},
		{Status: StatusFailed},
	}
	c := CountTasks(tasks)
	assert.Equal(t, TaskCounts{Active: 2, NewTask: 1, Completed: 1, Failed: 1}, c)
}
