package utilities

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnowflakeIDUnique(t *testing.T) {
	t.Setenv("SNOWFLAKE_NODE", "7")
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NewSnowflakeID()
		_, err := strconv.ParseInt(id, 10, 64)
		require.NoError(t, err, "snowflake id should be numeric: %q", id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %q", id)
		seen[id] = struct{}{}
	}
}

func TestNewSnowflakeIDBadNodeEnv(t *testing.T) {
	t.Setenv("SNOWFLAKE_NODE", "not-a-number")
	_, err := strconv.ParseInt(NewSnowflakeID(), 10, 64)
	assert.NoError(t, err)
}

func TestNewSnowflakeIDWithNodeOutOfRangeFallsBack(t *testing.T) {
	// node ids are 10 bits wide
	id := NewSnowflakeIDWithNode(5000)
	assert.Len(t, id, 27)
}

func TestNewConfirmationCode(t *testing.T) {
	a, b := NewConfirmationCode(), NewConfirmationCode()
	assert.NotEqual(t, a, b)
	assert.LessOrEqual(t, len(a), 50)
}

func TestNewUnusablePassword(t *testing.T) {
	p := NewUnusablePassword("!")
	assert.True(t, strings.HasPrefix(p, "!"))
	assert.Len(t, p, 28)
}
