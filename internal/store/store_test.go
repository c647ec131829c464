package store

import (
	"testing"

	"github.com/smallbiznis/ispdesk/internal/config"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func TestNewOpensSQLiteBackend(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	cfg := config.Config{
		AppName:      "ispdesk",
		StoreBackend: config.StoreSQL,
		DBType:       "sqlite",
		DBPath:       "file:store_test?mode=memory&cache=shared",
	}

	b, err := New(lc, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, docstore.BackendSQL, b.Kind)
	require.NotNil(t, b.DB)

	lc.RequireStart()
	lc.RequireStop()
}

func TestFirestoreRequiresProject(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	_, err := New(lc, config.Config{StoreBackend: config.StoreFirestore}, zap.NewNop())
	assert.ErrorIs(t, err, ErrMissingProject)
}

func TestDBConfigCopiesPoolSettings(t *testing.T) {
	got := DBConfig(config.Config{DBType: "postgres", DBMaxOpenConn: 20, DBMaxIdleConn: 5})
	assert.Equal(t, "postgres", got.Type)
	assert.Equal(t, 20, got.MaxOpenConn)
	assert.Equal(t, 5, got.MaxIdleConn)
}
