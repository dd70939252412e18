package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/pudottapommin/ephemeral-messages-service/pkg/messages"
)

// timestampLayout is what backends write: RFC3339 at second precision,
// always UTC. ParseTimestamp accepts more than this on the way back in,
// but nothing in this repository produces anything else.
const timestampLayout = time.RFC3339

// legacy rows written by earlier deployments carry naive timestamps
// without a zone marker; they were always UTC.
var legacyLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FormatTimestamp renders t the way every backend stores it.
func FormatTimestamp(t time.Time) string {
	return messages.Canon(t).Format(timestampLayout)
}

// ParseTimestamp is the single normalization point for timestamps coming
// back from a backend. It tolerates trailing zone markers, offsets and
// truncated sub-second precision, and normalizes everything to UTC at
// second precision. Input it cannot make sense of is an error, never a
// guessed date.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("parse timestamp: empty value")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return messages.Canon(t), nil
	}
	for _, layout := range legacyLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return messages.Canon(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp: unrecognized value %q", s)
}
