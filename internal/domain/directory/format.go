package directory

import (
	"strconv"
	"time"
)

// JoinDatePlaceholder is shown when a join date is absent or malformed.
const JoinDatePlaceholder = "---"

// FormatJoinDate renders a raw join-date value (unix seconds, carried
// as a string because the API may send it as number, string or null)
// as a calendar date. Absent or non-numeric input yields the
// placeholder rather than an error.
func FormatJoinDate(raw string) string {
	if raw == "" {
		return JoinDatePlaceholder
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return JoinDatePlaceholder
	}
	return time.Unix(secs, 0).UTC().Format("Jan 2, 2006")
}

// FormattedJoinDate renders the record's join date, falling back to the
// placeholder when it is null.
func (u UserRecord) FormattedJoinDate() string {
	if u.JoinDate == nil {
		return JoinDatePlaceholder
	}
	return FormatJoinDate(strconv.FormatInt(*u.JoinDate, 10))
}
