package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	activitydomain "github.com/smallbiznis/ispdesk/internal/activity/domain"
	campaigndomain "github.com/smallbiznis/ispdesk/internal/campaign/domain"
	customerdomain "github.com/smallbiznis/ispdesk/internal/customer/domain"
	paymentdomain "github.com/smallbiznis/ispdesk/internal/payment/domain"
	plandomain "github.com/smallbiznis/ispdesk/internal/plan/domain"
	reminderdomain "github.com/smallbiznis/ispdesk/internal/reminder/domain"
	settingsdomain "github.com/smallbiznis/ispdesk/internal/settings/domain"
	shopdomain "github.com/smallbiznis/ispdesk/internal/shop/domain"
	ticketdomain "github.com/smallbiznis/ispdesk/internal/ticket/domain"
	"gorm.io/gorm"
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Models lists every record collection stored in SQL.
func Models() []any {
	return []any{
		&shopdomain.Shop{},
		&customerdomain.Customer{},
		&plandomain.Plan{},
		&paymentdomain.Payment{},
		&ticketdomain.Ticket{},
		&campaigndomain.Campaign{},
		&activitydomain.Activity{},
		&reminderdomain.Reminder{},
		&settingsdomain.Settings{},
	}
}

// Migrate brings the schema up to date. Postgres runs the versioned SQL
// migrations, other dialects use gorm AutoMigrate.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}
	if conn.Dialector.Name() != "postgres" {
		if err := conn.AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return RunMigrations(sqlDB)
}

func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// migrator.Close would close the shared *sql.DB.

	return nil
}
