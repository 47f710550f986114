package catalog

import "time"

const (
	mediumDateLayout = "Jan 2, 2006"
	isoDateLayout    = "2006-01-02"
)

func mediumDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(mediumDateLayout)
}

func isoDate(t *time.Time) string {
	if t == nil {
		var zero time.Time
		return zero.Format(isoDateLayout)
	}
	return t.Format(isoDateLayout)
}
