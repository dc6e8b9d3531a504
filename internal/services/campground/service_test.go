package campground

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfallows/campgrounds/internal/dependencies/mocks"
	"github.com/rfallows/campgrounds/internal/model"
	"github.com/rfallows/campgrounds/internal/storage/memory"
)

func newTestService() (*Service, *memory.Storage, *mocks.MockClock) {
	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	return New(store, clk), store, clk
}

func TestCreateSetsOwnerAndTimestamps(t *testing.T) {
	svc, _, clk := newTestService()
	ctx := context.Background()

	cg, err := svc.Create(ctx, "u_1", Input{
		Title:    "Pine Ridge",
		Location: "Colorado",
		Price:    25,
	}, []model.Image{{URL: "https://img/1", Key: "k1"}})
	require.NoError(t, err)

	assert.NotEmpty(t, cg.ID)
	assert.Equal(t, model.IdentityID("u_1"), cg.OwnerID)
	assert.Equal(t, clk.Now(), cg.CreatedAt)
	assert.Len(t, cg.Images, 1)

	got, err := svc.Get(ctx, cg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pine Ridge", got.Title)
}

func TestUpdatePreservesOwner(t *testing.T) {
	svc, _, clk := newTestService()
	ctx := context.Background()

	cg, err := svc.Create(ctx, "u_1", Input{Title: "Pine Ridge", Location: "Colorado", Price: 25}, nil)
	require.NoError(t, err)

	clk.Advance(time.Hour)
	updated, err := svc.Update(ctx, cg.ID, Input{Title: "Pine Ridge", Location: "Colorado", Price: 30}, nil)
	require.NoError(t, err)

	assert.Equal(t, 30.0, updated.Price)
	assert.Equal(t, model.IdentityID("u_1"), updated.OwnerID, "owner never reassigned")
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestUpdateAppendsImages(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	cg, err := svc.Create(ctx, "u_1", Input{Title: "Pine Ridge", Location: "Colorado", Price: 25},
		[]model.Image{{URL: "https://img/1", Key: "k1"}})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, cg.ID, Input{Title: "Pine Ridge", Location: "Colorado", Price: 25},
		[]model.Image{{URL: "https://img/2", Key: "k2"}})
	require.NoError(t, err)

	require.Len(t, updated.Images, 2)
	assert.Equal(t, "k1", updated.Images[0].Key)
	assert.Equal(t, "k2", updated.Images[1].Key)
}

func TestUpdateMissingCampground(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Update(context.Background(), "nonexistent", Input{}, nil)
	assert.ErrorIs(t, err, model.ErrCampgroundNotFound)
}

func TestDeleteCascadesReviews(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	cg, err := svc.Create(ctx, "u_1", Input{Title: "Pine Ridge", Location: "Colorado", Price: 25}, nil)
	require.NoError(t, err)

	review := &model.Review{ID: "r_1", CampgroundID: cg.ID, AuthorID: "u_2", Rating: 4, Body: "Great spot"}
	require.NoError(t, store.SaveReview(ctx, review))
	cg.ReviewIDs = append(cg.ReviewIDs, review.ID)
	require.NoError(t, store.SaveCampground(ctx, cg))

	deleted, err := svc.Delete(ctx, cg.ID)
	require.NoError(t, err)
	assert.Equal(t, cg.ID, deleted.ID)

	_, err = svc.Get(ctx, cg.ID)
	assert.ErrorIs(t, err, model.ErrCampgroundNotFound)

	_, err = store.GetReview(ctx, "r_1")
	assert.ErrorIs(t, err, model.ErrReviewNotFound, "reviews should be cascaded")
}

func TestDeleteAlreadyDeleted(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	cg, err := svc.Create(ctx, "u_1", Input{Title: "Pine Ridge", Location: "Colorado", Price: 25}, nil)
	require.NoError(t, err)

	_, err = svc.Delete(ctx, cg.ID)
	require.NoError(t, err)

	// Second delete of the same id is a recoverable not-found
	_, err = svc.Delete(ctx, cg.ID)
	assert.ErrorIs(t, err, model.ErrCampgroundNotFound)
}
