package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"ada@example.com", "ada@example.com"},
		{"Ada@Example.COM", "Ada@example.com"},
		{"  ada@example.com\n", "ada@example.com"},
		{"a@b@EXAMPLE.com", "a@b@example.com"},
		{"no-at-sign", "no-at-sign"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeEmail(c.in), "input %q", c.in)
	}
}
