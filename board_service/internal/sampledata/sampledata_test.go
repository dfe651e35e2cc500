package sampledata

import (
	"context"
	"strings"
	"testing"
	"time"

	"jobboard/board_service/internal/docstore"
	"jobboard/board_service/internal/docstore/memstore"
	"jobboard/board_service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func TestSampleDatasetIsLabelled(t *testing.T) {
	for _, j := range Jobs(now) {
		assert.True(t, strings.HasPrefix(j.ID, IDPrefix), j.ID)
		require.NotNil(t, j.Company)
		require.NotNil(t, j.Category)
		if j.Salary.Max != nil {
			assert.GreaterOrEqual(t, *j.Salary.Max, j.Salary.Min, j.Slug)
		}
	}
	for _, a := range Applications(now) {
		assert.True(t, strings.HasPrefix(a.ID, IDPrefix), a.ID)
		assert.False(t, a.AppliedAt.After(now))
	}
}

func TestCategoryCountsOnlyPublished(t *testing.T) {
	counts := map[string]int{}
	for _, c := range Categories() {
		counts[c.Slug] = c.JobCount
	}
	assert.Equal(t, 2, counts["skilled-trades"])
	assert.Equal(t, 0, counts["office-admin"])
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	res, err := Seed(ctx, store, now)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Categories: 4, Companies: 3, Jobs: 8, Applications: 14}, res)

	published, err := store.Count(ctx, docstore.Query{
		Type:   models.DocJob,
		Filter: docstore.Eq("status", "status"),
		Params: docstore.Params{"status": "published"},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, published)

	_, err = Seed(ctx, store, now)
	assert.ErrorIs(t, err, docstore.ErrConflict)
	assert.Equal(t, 29, store.Len(), "failed reseed leaves no partial documents")
}
