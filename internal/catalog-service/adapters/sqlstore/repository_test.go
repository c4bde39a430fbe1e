package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/ecommerce-services/internal/catalog-service/domain"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/database"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(context.Background(), database.DriverSQLite, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestCreateGetList(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	widget := &domain.Product{ID: "p1", Name: "Widget", Description: "A widget", Price: 10.00}
	gadget := &domain.Product{ID: "p2", Name: "Gadget", Description: "A gadget", Price: 24.50}
	require.NoError(t, repo.Create(ctx, widget))
	require.NoError(t, repo.Create(ctx, gadget))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, widget, got)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []*domain.Product{widget, gadget}, all)
}

func TestGetMissingProduct(t *testing.T) {
	_, err := openTestRepo(t).Get(context.Background(), "P404")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreateRejectsNonPositivePrice(t *testing.T) {
	err := openTestRepo(t).Create(context.Background(), &domain.Product{ID: "p1", Name: "Free", Description: "x", Price: 0})
	assert.Error(t, err)
}

func TestCreateDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	p := &domain.Product{ID: "p1", Name: "Widget", Description: "A widget", Price: 1}
	require.NoError(t, repo.Create(ctx, p))
	assert.Error(t, repo.Create(ctx, p))
}
