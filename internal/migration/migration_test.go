package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMigrateCreatesEveryTableOnSQLite(t *testing.T) {
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, Migrate(conn))
	for _, table := range []string{"shops", "customers", "plans", "payments", "tickets", "campaigns", "activity", "reminders", "settings"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
}

func TestEmbeddedMigrationsCoverEveryModel(t *testing.T) {
	up, err := fs.ReadFile(embeddedMigrations, migrationsDir+"/000001_init.up.sql")
	require.NoError(t, err)

	sql := string(up)
	for _, table := range []string{"shops", "customers", "plans", "payments", "tickets", "campaigns", "activity", "reminders", "settings"} {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}

func TestMigrateRejectsNilConnection(t *testing.T) {
	assert.Error(t, Migrate(nil))
}
