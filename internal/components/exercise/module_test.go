package exercise

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestStoreModuleMemory(t *testing.T) {
	store, err := StoreModule("memory")
	require.NoError(t, err)

	var repo Repository
	app := fxtest.New(t, store, fx.Populate(&repo))
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, repo)
	assert.NoError(t, repo.Ping(context.Background()))
}

func TestStoreModuleUnknownDriver(t *testing.T) {
	_, err := StoreModule("sqlite")
	assert.ErrorContains(t, err, `unknown store driver "sqlite"`)
}

func TestStoreModuleKnownDrivers(t *testing.T) {
	for _, driver := range []string{"", "postgres", "mongo"} {
		store, err := StoreModule(driver)
		require.NoError(t, err, driver)
		assert.NotNil(t, store, driver)
	}
}
