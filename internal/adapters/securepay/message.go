package securepay

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxMessageIDLength is the provider's limit for messageID
const maxMessageIDLength = 30

// NewMessageID returns a fresh message identifier of at most 30 characters
func NewMessageID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if len(id) > maxMessageIDLength {
		id = id[:maxMessageIDLength]
	}
	return id
}

// FormatTimestamp renders t as YYYYDDMMHHNNSSkkk+000 in UTC.
// Day precedes month: this is the order the provider has always received from us.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s%03d+000", t.Format("20060201150405"), t.Nanosecond()/int(time.Millisecond))
}

// FormatStartDate renders a recurring start date as YYYYMMDD
func FormatStartDate(t time.Time) string {
	return t.Format("20060102")
}
