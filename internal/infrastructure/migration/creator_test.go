package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"add advocates table", "add_advocates_table"},
		{"Add-Appointment-Reminders", "add_appointment_reminders"},
		{"ADD_RATING_CONSTRAINTS", "add_rating_constraints"},
		{"add__knowledge__chunks", "add_knowledge_chunks"},
		{"Seed Specializations v2", "seed_specializations_v2"},
		{"   padded   ", "padded"},
		{"drop!@#$legacy", "droplegacy"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitizeName(tc.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add advocates table", "Advocate profiles with verification status")
	require.NoError(t, err)

	// Version is a sortable YYYYMMDDHHMMSS stamp
	assert.Len(t, mf.Version, 14)

	assert.True(t, strings.HasSuffix(mf.UpPath, ".up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, ".down.sql"))

	upBase := strings.TrimSuffix(filepath.Base(mf.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(mf.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase, "up and down files must share a base name")
	assert.True(t, strings.HasSuffix(upBase, "_add_advocates_table"))

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add advocates table")
	assert.Contains(t, string(up), "Advocate profiles with verification status")
	assert.Contains(t, string(up), "Write your UP migration SQL here")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "Rollback")
	assert.Contains(t, string(down), "Write your DOWN migration SQL here")
}

func TestCreateMigrationCreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "db", "migrations")

	_, err := CreateMigration(nested, "init schema", "")
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func seedMigrationFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- stub"), 0644))
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	seedMigrationFiles(t, dir,
		"000002_add_advocates.up.sql",
		"000002_add_advocates.down.sql",
		"000001_init_schema.up.sql",
		"000001_init_schema.down.sql",
		"000003_add_appointments.up.sql",
		"000003_add_appointments.down.sql",
	)

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"000001_init_schema",
		"000002_add_advocates",
		"000003_add_appointments",
	}, migrations, "migrations must come back in apply order")
}

func TestListMigrationsEmptyDirectory(t *testing.T) {
	migrations, err := ListMigrations(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, migrations)
}

func TestListMigrationsMissingDirectory(t *testing.T) {
	migrations, err := ListMigrations(filepath.Join(t.TempDir(), "does", "not", "exist"))
	require.NoError(t, err)
	assert.Empty(t, migrations)
}

func TestListMigrationsSkipsStrayFiles(t *testing.T) {
	dir := t.TempDir()
	seedMigrationFiles(t, dir,
		"000001_init.up.sql",
		"000001_init.down.sql",
		"README.md",
		"schema.dump",
		".gitkeep",
	)

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init"}, migrations)
}

func TestListMigrationsSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	seedMigrationFiles(t, dir, "000001_init.up.sql", "000001_init.down.sql")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0755))

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init"}, migrations)
}
