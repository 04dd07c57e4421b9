package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustID(t *testing.T, s string) Identifier {
	t.Helper()
	id, err := ParseIdentifier(s)
	require.NoError(t, err)
	return id
}

func TestParseIdentifierRejectsBlank(t *testing.T) {
	for _, s := range []string{"", "   ", "\t"} {
		_, err := ParseIdentifier(s)
		assert.ErrorIs(t, err, ErrEmptyIdentifier)
	}
}

func TestIdentifierCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"numeric order", "9", "10", -1},
		{"numeric equal across formats", "10", "10.0", 0},
		{"numeric before text", "999", "A1", -1},
		{"text after numeric", "A1", "1", 1},
		{"lexical text", "B", "A", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustID(t, tt.a).Compare(mustID(t, tt.b)))
		})
	}
}

func TestSortAttendeesIsStable(t *testing.T) {
	as := []Attendee{
		{ID: mustID(t, "3"), Name: "c"},
		{ID: mustID(t, "1"), Name: "a-first"},
		{ID: mustID(t, "2"), Name: "b"},
		{ID: mustID(t, "1"), Name: "a-second"},
	}
	SortAttendees(as)
	names := make([]string, len(as))
	for i, a := range as {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"a-first", "a-second", "b", "c"}, names)
}
