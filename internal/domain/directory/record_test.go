package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullName(t *testing.T) {
	tests := []struct {
		name     string
		record   UserRecord
		expected string
	}{
		{"both names", UserRecord{FirstName: "Ali", LastName: "Rezaei"}, "Ali Rezaei"},
		{"first only", UserRecord{FirstName: "Ali"}, "Ali"},
		{"last only", UserRecord{LastName: "Rezaei"}, "Rezaei"},
		{"neither", UserRecord{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.FullName())
		})
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name     string
		record   UserRecord
		expected string
	}{
		{"both names", UserRecord{FirstName: "ali", LastName: "rezaei"}, "AR"},
		{"first only", UserRecord{FirstName: "Ali"}, "A"},
		{"username fallback", UserRecord{Username: "sara_a"}, "S"},
		{"nothing at all", UserRecord{}, "?"},
		{"whitespace names fall through", UserRecord{FirstName: "  ", Username: "bob"}, "B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.Initials())
		})
	}
}
