package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLocalURL(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		raw  string
		want bool
	}{
		{raw: "/", want: true},
		{raw: "/bookings", want: true},
		{raw: "/bookings/create?eventId=3", want: true},
		{raw: "", want: false},
		{raw: "bookings", want: false},
		{raw: "//evil.com", want: false},
		{raw: "/\\evil.com", want: false},
		{raw: "http://evil.com", want: false},
		{raw: "https://example.com/bookings", want: false},
		{raw: "javascript:alert(1)", want: false},
		{raw: "/path\r\nSet-Cookie: x=1", want: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, IsLocalURL(tc.raw))
		})
	}
}
