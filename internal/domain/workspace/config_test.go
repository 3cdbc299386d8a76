package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	root := t.TempDir()
	content := "packages:\n  - 'packages/*'\n  - 'apps/*'\n  - '!**/test/**'\ncatalog:\n  react: ^18.0.0\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(content), 0o644))

	cfg, err := LoadConfig(root)
	require.NoError(t, err)
	require.Equal(t, []string{"packages/*", "apps/*", "!**/test/**"}, cfg.Packages)
}

func TestLoadConfigMissing(t *testing.T) {
	root := t.TempDir()

	_, err := LoadConfig(root)
	var notFound *ConfigNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, root, notFound.Root)
	require.Contains(t, err.Error(), ConfigFileName)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "invalid yaml", data: "packages: [\"a\"\n"},
		{name: "missing packages", data: "catalog:\n  react: ^18.0.0\n"},
		{name: "empty document", data: ""},
		{name: "wrong type", data: "packages: {a: b}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("/ws/"+ConfigFileName, []byte(tt.data))
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			require.Equal(t, "/ws/"+ConfigFileName, parseErr.Path)
		})
	}
}

func TestParseConfigEmptyList(t *testing.T) {
	cfg, err := ParseConfig(ConfigFileName, []byte("packages: []\n"))
	require.NoError(t, err)
	require.Empty(t, cfg.Packages)
}
