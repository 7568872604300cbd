package directory

import "strings"

// Boolean-valued criteria are encoded as strings so that the empty
// string can mean "no constraint".
const (
	FlagTrue  = "true"
	FlagFalse = "false"
)

// FilterCriteria is the set of optional search predicates applied to
// the user collection. An empty field places no constraint. Callers
// keep two copies: a draft edited live by the filter form and an
// applied copy committed on an explicit apply action.
type FilterCriteria struct {
	Name         string
	UserID       string
	Username     string
	PhoneNumber  string
	Country      string
	IsBanned     string // "true", "false" or ""
	IsRegistered string // "true", "false" or ""
}

// IsEmpty reports whether no field places a constraint.
func (c FilterCriteria) IsEmpty() bool {
	return c == FilterCriteria{}
}

// Match evaluates every non-empty criterion against the record and
// combines them with logical AND.
//
// Matching rules follow the local-filtering variant of the directory:
// name, userId and username are substring matches (name and username
// case-insensitive, across first or last name for name), country is a
// case-sensitive substring match, and the two flags require exact
// equality. A phone criterion is skipped for records without a phone
// number.
func (c FilterCriteria) Match(u UserRecord) bool {
	if c.Name != "" {
		q := strings.ToLower(c.Name)
		if !strings.Contains(strings.ToLower(u.FirstName), q) &&
			!strings.Contains(strings.ToLower(u.LastName), q) {
			return false
		}
	}
	if c.UserID != "" && !strings.Contains(u.UserID, c.UserID) {
		return false
	}
	if c.Username != "" &&
		!strings.Contains(strings.ToLower(u.Username), strings.ToLower(c.Username)) {
		return false
	}
	if c.PhoneNumber != "" && u.PhoneNumber != "" &&
		!strings.Contains(u.PhoneNumber, c.PhoneNumber) {
		return false
	}
	if c.Country != "" && !strings.Contains(u.Country, c.Country) {
		return false
	}
	if c.IsBanned != "" && u.IsBan != (c.IsBanned == FlagTrue) {
		return false
	}
	if c.IsRegistered != "" && u.IsRegistered != (c.IsRegistered == FlagTrue) {
		return false
	}
	return true
}

// Apply filters the full record set through Match, preserving the
// original relative order. With empty criteria the input is returned
// unchanged.
func (c FilterCriteria) Apply(all []UserRecord) []UserRecord {
	if c.IsEmpty() {
		return all
	}
	out := make([]UserRecord, 0, len(all))
	for _, u := range all {
		if c.Match(u) {
			out = append(out, u)
		}
	}
	return out
}
