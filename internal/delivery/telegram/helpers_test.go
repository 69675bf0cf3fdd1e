package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSingleInt(t *testing.T) {
	n, ok := parseSingleInt(" 67 ")
	assert.True(t, ok)
	assert.Equal(t, 67, n)

	for _, in := range []string{"", "abc", "1 2", "2.5"} {
		_, ok := parseSingleInt(in)
		assert.False(t, ok, in)
	}
}

func TestParseRemindersArgs(t *testing.T) {
	tests := []struct {
		in      string
		enabled bool
		hour    int
		ok      bool
	}{
		{"on", true, -1, true},
		{"ON 6", true, 6, true},
		{"on 25", true, 25, true}, // range is checked by the service
		{"off", false, -1, true},
		{"off 6", false, 0, false},
		{"on x", false, 0, false},
		{"", false, 0, false},
		{"maybe", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			enabled, hour, ok := parseRemindersArgs(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.enabled, enabled)
				assert.Equal(t, tt.hour, hour)
			}
		})
	}
}
