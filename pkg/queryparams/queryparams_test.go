package queryparams

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getter(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestParseEventFilter(t *testing.T) {
	t.Parallel()

	f := ParseEventFilter(getter(map[string]string{
		"category":   " Music ",
		"date":       "2030-06-15",
		"venue":      "hall",
		"maxPrice":   "40.5",
		"searchTerm": "jazz",
	}))

	assert.Equal(t, "Music", f.Category)
	assert.Equal(t, "hall", f.Venue)
	assert.Equal(t, "jazz", f.SearchTerm)
	require.NotNil(t, f.MaxPrice)
	assert.InDelta(t, 40.5, *f.MaxPrice, 0.0001)
	require.NotNil(t, f.Date)

	start, end, ok := f.DayRange()
	require.True(t, ok)
	assert.True(t, time.Date(2030, 6, 15, 0, 0, 0, 0, time.Local).Equal(start))
	assert.Equal(t, 24*time.Hour, end.Sub(start))
	assert.False(t, f.IsEmpty())
}

func TestParseEventFilterIgnoresInvalidValues(t *testing.T) {
	t.Parallel()

	f := ParseEventFilter(getter(map[string]string{
		"date":     "15/06/2030",
		"maxPrice": "abc",
	}))

	assert.Nil(t, f.Date)
	assert.Nil(t, f.MaxPrice)
	assert.True(t, f.IsEmpty())

	_, _, ok := f.DayRange()
	assert.False(t, ok)
}

func TestParseBookingFilter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		values     map[string]string
		wantEvent  *uint
		wantMember *uint
	}{
		{name: "Empty", values: map[string]string{}},
		{name: "Both", values: map[string]string{"eventId": "3", "memberId": "7"}, wantEvent: ptr(3), wantMember: ptr(7)},
		{name: "Zero and garbage ignored", values: map[string]string{"eventId": "0", "memberId": "x"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := ParseBookingFilter(getter(tc.values))
			assert.Equal(t, tc.wantEvent, f.EventID)
			assert.Equal(t, tc.wantMember, f.MemberID)
		})
	}
}

func ptr(v uint) *uint { return &v }
