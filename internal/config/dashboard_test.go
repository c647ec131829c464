package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDashboardConfigDefaults(t *testing.T) {
	v := viper.New()
	v.SetDefault("dashboard.reminderLeadDays", 10)
	v.SetDefault("dashboard.reminderInterval", "1h")
	v.SetDefault("dashboard.snapshotCacheTTL", "15s")
	v.SetDefault("dashboard.recentActivityLimit", 10)
	v.SetDefault("dashboard.dailyRevenueDays", 7)

	cfg, err := decodeDashboardConfig(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultDashboardConfig(), cfg)
}

func TestValidateDashboardConfigRejectsBadValues(t *testing.T) {
	cfg := DefaultDashboardConfig()
	cfg.RecentActivityLimit = 0
	assert.Error(t, validateDashboardConfig(cfg))

	cfg = DefaultDashboardConfig()
	cfg.ReminderInterval = 0
	assert.Error(t, validateDashboardConfig(cfg))

	cfg = DefaultDashboardConfig()
	cfg.ReminderLeadDays = -1
	assert.Error(t, validateDashboardConfig(cfg))

	cfg = DefaultDashboardConfig()
	cfg.SnapshotCacheTTL = -time.Second
	assert.Error(t, validateDashboardConfig(cfg))

	cfg.SnapshotCacheTTL = 0
	assert.NoError(t, validateDashboardConfig(cfg))
}

func TestNilHolderFallsBackToDefaults(t *testing.T) {
	var holder *DashboardConfigHolder
	assert.Equal(t, DefaultDashboardConfig(), holder.Get())

	static := StaticDashboardConfig(DashboardConfig{ReminderLeadDays: 3, ReminderInterval: time.Minute, RecentActivityLimit: 5, DailyRevenueDays: 7})
	assert.Equal(t, 3, static.Get().ReminderLeadDays)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Firestore")
	t.Setenv("FIRESTORE_PROJECT_ID", "demo-project")
	t.Setenv("DATABASE_CONN_MAX_LIFETIME", "10m")
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()
	assert.Equal(t, StoreFirestore, cfg.StoreBackend)
	assert.Equal(t, "demo-project", cfg.Firestore.ProjectID)
	assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
	assert.False(t, cfg.Redis.Enabled())
}
