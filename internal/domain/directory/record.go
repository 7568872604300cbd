package directory

import (
	"strings"
	"unicode"
)

// UserRecord represents one end-user as reported by the directory API.
// Records are immutable snapshots; the result set is replaced wholesale
// on every fetch and never mutated in place.
type UserRecord struct {
	Counter      int64   `json:"counter,omitempty"` // Ordinal assigned by the server, descending sort key
	UserID       string  `json:"user_id"`           // Numeric identity, kept as string because it may exceed float precision
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Username     string  `json:"username"`
	PhoneNumber  string  `json:"phone_number"`
	Country      string  `json:"country"`
	IsBan        bool    `json:"is_ban"`
	IsRegistered bool    `json:"is_registered"`
	Score        float64 `json:"score"`
	JoinDate     *int64  `json:"join_date"` // Unix seconds, null when unknown
	ProfilePath  string  `json:"profile_path"`
}

// FullName joins the first and last name, tolerating either being empty.
func (u UserRecord) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials returns up to two uppercase initials for avatar fallback text.
// When both names are empty it falls back to the username, then to "?".
func (u UserRecord) Initials() string {
	var b strings.Builder
	for _, s := range []string{u.FirstName, u.LastName} {
		for _, r := range strings.TrimSpace(s) {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	if b.Len() == 0 {
		for _, r := range strings.TrimSpace(u.Username) {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}
