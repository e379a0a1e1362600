package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullName(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{"Ada", "", "Ada "},
		{"", "Lovelace", " Lovelace"},
		{"", "", " "},
	}
	for _, c := range cases {
		a := &Account{FirstName: c.first, LastName: c.last}
		assert.Equal(t, c.want, a.FullName())
	}
}

func TestShortName(t *testing.T) {
	a := &Account{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada", a.ShortName())

	assert.Equal(t, "", (&Account{LastName: "Lovelace"}).ShortName())
}

func TestHasUsablePassword(t *testing.T) {
	assert.True(t, (&Account{PasswordHash: "$2a$04$abc"}).HasUsablePassword())
	assert.False(t, (&Account{PasswordHash: "!2Hk3..."}).HasUsablePassword())
	assert.False(t, (&Account{}).HasUsablePassword())
}

func TestPrivilege(t *testing.T) {
	assert.Equal(t, Ordinary, (&Account{}).Privilege())
	assert.Equal(t, Staff, (&Account{IsStaff: true}).Privilege())
	assert.Equal(t, Superuser, (&Account{IsStaff: true, IsSuperuser: true}).Privilege())
	// superuser without staff is representable and still reported as superuser
	assert.Equal(t, Superuser, (&Account{IsSuperuser: true}).Privilege())

	assert.Equal(t, "ordinary", Ordinary.String())
	assert.Equal(t, "staff", Staff.String())
	assert.Equal(t, "superuser", Superuser.String())
}
