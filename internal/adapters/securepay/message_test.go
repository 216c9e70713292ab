package securepay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMessageID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewMessageID()
		assert.LessOrEqual(t, len(id), 30)
		assert.NotContains(t, id, "-")
		assert.False(t, seen[id], "duplicate message id %s", id)
		seen[id] = true
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 123_000_000, time.UTC)
	assert.Equal(t, "20240503140709123+000", FormatTimestamp(ts))
}

func TestFormatTimestamp_ConvertsToUTC(t *testing.T) {
	sydney := time.FixedZone("AEST", 10*60*60)
	ts := time.Date(2024, time.March, 5, 9, 0, 0, 7_000_000, sydney)
	assert.Equal(t, "20240403230000007+000", FormatTimestamp(ts))
}

func TestFormatStartDate(t *testing.T) {
	assert.Equal(t, "20241231", FormatStartDate(time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC)))
}
