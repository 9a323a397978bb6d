package harfmt

import "time"

const (
	isoSeconds = "2006-01-02T15:04:05"
	isoMicros  = "2006-01-02T15:04:05.000000"
)

// formatTimestamp renders t in UTC as YYYY-MM-DDTHH:MM:SS[.ffffff]Z.
// The fraction is shown only when the microsecond part is non-zero.
func formatTimestamp(t time.Time) string {
	t = t.UTC().Truncate(time.Microsecond)
	if t.Nanosecond() == 0 {
		return t.Format(isoSeconds) + "Z"
	}
	return t.Format(isoMicros) + "Z"
}

// millis converts d to whole milliseconds, truncating toward zero.
func millis(d time.Duration) int64 {
	return d.Milliseconds()
}
