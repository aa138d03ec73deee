package sync

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSince_Numbers(t *testing.T) {
	ms, ok := ParseSince(float64(1700000000000))
	assert.True(t, ok)
	assert.Equal(t, int64(1700000000000), ms)

	ms, ok = ParseSince(int64(42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), ms)

	ms, ok = ParseSince(json.Number("1700000000000"))
	assert.True(t, ok)
	assert.Equal(t, int64(1700000000000), ms)
}

func TestParseSince_ISOStrings(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01T10:30:00Z", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-03-01T10:30:00", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-03-01 10:30:00", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		ms, ok := ParseSince(tc.in)
		assert.True(t, ok, tc.in)
		assert.Equal(t, tc.want.UnixMilli(), ms, tc.in)
	}
}

func TestParseSince_NumericString(t *testing.T) {
	ms, ok := ParseSince("1700000000000")
	assert.True(t, ok)
	assert.Equal(t, int64(1700000000000), ms)
}

func TestParseSince_ISOWinsOverEpoch(t *testing.T) {
	// A full date string is always a calendar date, never a tiny epoch value.
	ms, ok := ParseSince("2024-03-01")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), ms)

	// A bare year is a calendar date too, not an epoch value of 2023 ms.
	ms, ok = ParseSince("2023")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), ms)
}

func TestParseSince_Invalid(t *testing.T) {
	for _, in := range []any{"not-a-date", "", "  ", nil, true, []int{1}} {
		_, ok := ParseSince(in)
		assert.False(t, ok, "%v should not parse", in)
	}
}
