package service

import (
	"context"
	"testing"

	"jobboard/board_service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewFollowService(f.repo, discardLogger())
	ident := models.Identity{ID: "seeker-1", Role: models.RoleJobseeker}

	following, err := svc.Get(ctx, ident, f.company.ID)
	require.NoError(t, err)
	assert.False(t, following)

	following, err = svc.Toggle(ctx, ident, f.company.ID)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = svc.Set(ctx, ident, f.company.ID, true)
	require.NoError(t, err)
	assert.True(t, following)

	follows, err := svc.List(ctx, ident)
	require.NoError(t, err)
	require.Len(t, follows, 1)
	assert.Equal(t, f.company.ID, follows[0].CompanyID)

	following, err = svc.Toggle(ctx, ident, f.company.ID)
	require.NoError(t, err)
	assert.False(t, following)

	_, err = svc.Set(ctx, ident, "no-such-company", true)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
