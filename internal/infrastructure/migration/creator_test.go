package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"add boms table", "add_boms_table"},
		{"Add-BOM-Lines", "add_bom_lines"},
		{"ADD_COMPONENTS", "add_components"},
		{"single  active__bom  index", "single_active_bom_index"},
		{"rev 2 schema", "rev_2_schema"},
		{"   padded   ", "padded"},
		{"cost!@#columns", "cost_columns"},
		{"trailing_", "trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.input), "input %q", tt.input)
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add boms table", "BOM header and line tables")
	require.NoError(t, err)

	// Version is a sortable YYYYMMDDHHMMSS stamp.
	assert.Len(t, mf.Version, 14)
	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_boms_table.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_boms_table.down.sql"))

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add boms table (up)")
	assert.Contains(t, string(up), "BOM header and line tables")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "add boms table (down)")
}

func TestCreateMigration_OmitsEmptyDescription(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "seed units", "")
	require.NoError(t, err)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(up), "--"))
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "db", "migrations")

	_, err := CreateMigration(nested, "init schema", "")
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListMigrations(t *testing.T) {
	t.Run("pairs sorted by version", func(t *testing.T) {
		dir := t.TempDir()
		for _, f := range []string{
			"000002_add_bom_lines.up.sql",
			"000002_add_bom_lines.down.sql",
			"000001_add_boms.up.sql",
			"000001_add_boms.down.sql",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- sql"), 0o644))
		}

		names, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_add_boms", "000002_add_bom_lines"}, names)
	})

	t.Run("ignores stray files and directories", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_init.up.sql"), []byte("-- sql"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_init.down.sql"), []byte("-- sql"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0o644))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0o755))

		names, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_init"}, names)
	})

	t.Run("missing directory lists as empty", func(t *testing.T) {
		names, err := ListMigrations(filepath.Join(t.TempDir(), "never-created"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}
