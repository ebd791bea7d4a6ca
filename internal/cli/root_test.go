package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown command error",
			err:  errors.New(`unknown command "lokup" for "cfx"`),
			want: true,
		},
		{
			name: "unknown flag error",
			err:  errors.New(`unknown flag: --limt`),
			want: true,
		},
		{
			name: "other error",
			err:  errors.New("Server 'abc123' not found"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard cobra format",
			err:  errors.New(`unknown command "lokup" for "cfx"`),
			want: "lokup",
		},
		{
			name: "subcommand",
			err:  errors.New(`unknown command "favs" for "cfx favorites"`),
			want: "favs",
		},
		{
			name: "no quotes returns empty",
			err:  errors.New("unknown command foo"),
			want: "",
		},
		{
			name: "unterminated quote returns empty",
			err:  errors.New(`unknown command "foo`),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

func TestRootCommandTree(t *testing.T) {
	paths := [][]string{
		{"lookup"},
		{"watch"},
		{"search"},
		{"browse"},
		{"favorites", "list"},
		{"favorites", "add"},
		{"favorites", "remove"},
		{"favorites", "clear"},
		{"recent", "clear"},
		{"config", "init"},
		{"config", "show"},
		{"config", "set"},
		{"config", "path"},
		{"version"},
		{"completion"},
	}

	for _, path := range paths {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, "%v", path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
		assert.NotEmpty(t, cmd.Short, "%v needs a short description", path)
	}
}

func TestRootCommandSuggestions(t *testing.T) {
	assert.Contains(t, rootCmd.SuggestionsFor("lokup"), "lookup")
	assert.Contains(t, rootCmd.SuggestionsFor("serch"), "search")
}

func TestFavoritesAlias(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"fav", "add"})
	require.NoError(t, err)
	assert.Equal(t, favoritesAddCmd, cmd)
}

func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "json", "no-color", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "--%s", name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestCommandFlags(t *testing.T) {
	for _, cmd := range []struct {
		name  string
		flags []string
	}{
		{"search", []string{"limit"}},
		{"browse", []string{"limit"}},
		{"favorites clear", []string{"yes"}},
		{"recent clear", []string{"yes"}},
		{"config init", []string{"force", "path"}},
		{"version", []string{"short"}},
	} {
		t.Run(cmd.name, func(t *testing.T) {
			found, _, err := rootCmd.Find(strings.Fields(cmd.name))
			require.NoError(t, err)
			for _, f := range cmd.flags {
				assert.NotNil(t, found.Flags().Lookup(f), "--%s", f)
			}
		})
	}
}
