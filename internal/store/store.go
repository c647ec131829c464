// Package store opens the record backend selected by STORE_BACKEND.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/smallbiznis/ispdesk/internal/config"
	obslogger "github.com/smallbiznis/ispdesk/internal/observability/logger"
	"github.com/smallbiznis/ispdesk/pkg/db"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	gormlogger "gorm.io/gorm/logger"
)

var ErrMissingProject = errors.New("store: FIRESTORE_PROJECT_ID is required")

var Module = fx.Module("store",
	fx.Provide(New),
)

// DBConfig maps process configuration onto the SQL connection settings.
func DBConfig(cfg config.Config) db.Config {
	return db.Config{
		Type:            cfg.DBType,
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		Name:            cfg.DBName,
		User:            cfg.DBUser,
		Password:        cfg.DBPassword,
		SSLMode:         cfg.DBSSLMode,
		Path:            cfg.DBPath,
		MaxIdleConn:     cfg.DBMaxIdleConn,
		MaxOpenConn:     cfg.DBMaxOpenConn,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	}
}

func New(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*docstore.Backend, error) {
	if cfg.StoreBackend == config.StoreFirestore {
		return openFirestore(lc, cfg.Firestore, log)
	}
	return openSQL(lc, cfg, log)
}

func openSQL(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*docstore.Backend, error) {
	level := gormlogger.Warn
	if !cfg.IsProduction() {
		level = gormlogger.Info
	}
	conn, err := db.Open(DBConfig(cfg), db.Options{
		Logger:      obslogger.NewGormLogger(level, 200*time.Millisecond),
		Metrics:     true,
		Tracing:     true,
		MetricsName: cfg.AppName,
	}, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return docstore.NewSQLBackend(conn), nil
}

func openFirestore(lc fx.Lifecycle, cfg config.FirestoreConfig, log *zap.Logger) (*docstore.Backend, error) {
	if cfg.ProjectID == "" {
		return nil, ErrMissingProject
	}

	var opts []option.ClientOption
	switch {
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firestore client: %w", err)
	}
	log.Info("firestore connected", zap.String("project_id", cfg.ProjectID))

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return docstore.NewFirestoreBackend(client), nil
}
