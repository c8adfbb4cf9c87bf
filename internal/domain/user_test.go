package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAvatarInitial(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "alice", "A"},
		{"already uppercase", "Bob", "B"},
		{"leading spaces", "  carol", "C"},
		{"empty name", "", "?"},
		{"only spaces", "   ", "?"},
		{"multibyte rune", "Álvaro", "Á"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := User{Name: tc.in}
			require.Equal(t, tc.want, u.AvatarInitial())
		})
	}
}

func TestValidRole(t *testing.T) {
	require.Equal(t, RoleAdmin, ValidRole("ADMIN"))
	require.Equal(t, RoleEditor, ValidRole("EDITOR"))
	require.Equal(t, RoleEditor, ValidRole("SUPERUSER"))
	require.Equal(t, RoleEditor, ValidRole(""))
	require.Equal(t, RoleEditor, ValidRole("admin"))
}

func TestIsAdmin(t *testing.T) {
	require.True(t, User{Role: RoleAdmin}.IsAdmin())
	require.False(t, User{Role: RoleEditor}.IsAdmin())
}
