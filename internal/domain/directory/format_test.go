package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatJoinDate_Placeholder(t *testing.T) {
	assert.Equal(t, "---", FormatJoinDate(""))
	assert.Equal(t, "---", FormatJoinDate("not-a-number"))
}

func TestFormatJoinDate_ValidTimestamp(t *testing.T) {
	got := FormatJoinDate("1700000000")

	assert.NotEqual(t, JoinDatePlaceholder, got)
	assert.Equal(t, "Nov 14, 2023", got)
}

func TestFormattedJoinDate(t *testing.T) {
	assert.Equal(t, "---", UserRecord{}.FormattedJoinDate())

	join := int64(1700000000)
	assert.Equal(t, "Nov 14, 2023", UserRecord{JoinDate: &join}.FormattedJoinDate())
}
