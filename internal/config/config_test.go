package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// No config file anywhere near the temp working directory.
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err) // explicit paths must exist

	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, "users.json", cfg.Data.UsersFile)
	require.Equal(t, "products.json", cfg.Data.ProductsFile)
	require.Equal(t, "images", cfg.Assets.Dir)
	require.Equal(t, "admin@example.com", cfg.Admin.Email)
	require.Equal(t, "admin", cfg.Admin.Password)
	require.Equal(t, "Administrator", cfg.Admin.Nickname)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
data:
  users_file: /var/lib/secondhand/users.json
  products_file: /var/lib/secondhand/products.json
assets:
  dir: /var/lib/secondhand/images
admin:
  email: root@example.com
logging:
  level: debug
  format: json
  output: stderr
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/var/lib/secondhand/users.json", cfg.Data.UsersFile)
	require.Equal(t, "/var/lib/secondhand/images", cfg.Assets.Dir)
	require.Equal(t, "root@example.com", cfg.Admin.Email)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
	require.Equal(t, "stderr", cfg.Logging.Output)

	// Untouched keys keep their defaults.
	require.Equal(t, "admin", cfg.Admin.Password)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SECONDHAND_DATA_USERS_FILE", "/srv/users.json")
	t.Setenv("SECONDHAND_ADMIN_PASSWORD", "hunter2")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/srv/users.json", cfg.Data.UsersFile)
	require.Equal(t, "hunter2", cfg.Admin.Password)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad level", "logging:\n  level: noisy\n"},
		{"bad format", "logging:\n  format: xml\n"},
		{"blank admin email", "admin:\n  email: \"\"\n"},
		{"blank users file", "data:\n  users_file: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			require.Error(t, err)
		})
	}
}
