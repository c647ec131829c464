package config

import (
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DashboardConfig holds the operator tunables that may change at runtime.
type DashboardConfig struct {
	ReminderLeadDays    int           `mapstructure:"reminderLeadDays"`
	ReminderInterval    time.Duration `mapstructure:"reminderInterval"`
	// SnapshotCacheTTL of 0 disables snapshot caching.
	SnapshotCacheTTL    time.Duration `mapstructure:"snapshotCacheTTL"`
	RecentActivityLimit int           `mapstructure:"recentActivityLimit"`
	DailyRevenueDays    int           `mapstructure:"dailyRevenueDays"`
}

func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		ReminderLeadDays:    10,
		ReminderInterval:    time.Hour,
		SnapshotCacheTTL:    15 * time.Second,
		RecentActivityLimit: 10,
		DailyRevenueDays:    7,
	}
}

type DashboardConfigHolder struct {
	current atomic.Value // holds DashboardConfig
}

// StaticDashboardConfig returns a holder that never reloads.
func StaticDashboardConfig(cfg DashboardConfig) *DashboardConfigHolder {
	holder := &DashboardConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewDashboardConfigHolder(log *zap.Logger) (*DashboardConfigHolder, error) {
	log = log.Named("dashboard-config")
	v := viper.New()

	v.SetConfigName("dashboard")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/ispdesk/config")
	v.AddConfigPath("/etc/ispdesk")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ISPDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultDashboardConfig()
	v.SetDefault("dashboard.reminderLeadDays", defaults.ReminderLeadDays)
	v.SetDefault("dashboard.reminderInterval", defaults.ReminderInterval)
	v.SetDefault("dashboard.snapshotCacheTTL", defaults.SnapshotCacheTTL)
	v.SetDefault("dashboard.recentActivityLimit", defaults.RecentActivityLimit)
	v.SetDefault("dashboard.dailyRevenueDays", defaults.DailyRevenueDays)

	found := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		found = false
	}

	cfg, err := decodeDashboardConfig(v)
	if err != nil {
		return nil, err
	}

	holder := StaticDashboardConfig(cfg)
	if !found {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeDashboardConfig(v)
		if err != nil {
			log.Warn("reload ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *DashboardConfigHolder) Get() DashboardConfig {
	if h == nil {
		return DefaultDashboardConfig()
	}
	cfg, ok := h.current.Load().(DashboardConfig)
	if !ok {
		return DefaultDashboardConfig()
	}
	return cfg
}

func decodeDashboardConfig(v *viper.Viper) (DashboardConfig, error) {
	var cfg DashboardConfig
	if err := v.UnmarshalKey("dashboard", &cfg); err != nil {
		return DashboardConfig{}, err
	}
	if err := validateDashboardConfig(cfg); err != nil {
		return DashboardConfig{}, err
	}
	return cfg, nil
}

func validateDashboardConfig(cfg DashboardConfig) error {
	if cfg.ReminderLeadDays < 0 {
		return errors.New("dashboard.reminderLeadDays cannot be negative")
	}
	if cfg.ReminderInterval <= 0 {
		return errors.New("dashboard.reminderInterval must be positive")
	}
	if cfg.SnapshotCacheTTL < 0 {
		return errors.New("dashboard.snapshotCacheTTL cannot be negative")
	}
	if cfg.RecentActivityLimit <= 0 {
		return errors.New("dashboard.recentActivityLimit must be positive")
	}
	if cfg.DailyRevenueDays <= 0 {
		return errors.New("dashboard.dailyRevenueDays must be positive")
	}
	return nil
}
