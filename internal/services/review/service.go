package review

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rfallows/campgrounds/internal/dependencies/clock"
	"github.com/rfallows/campgrounds/internal/model"
	"github.com/rfallows/campgrounds/internal/storage"
)

// WithAuthor pairs a review with its resolved author for display
type WithAuthor struct {
	Review *model.Review
	Author *model.Identity // nil if the account no longer exists
}

// Service manages reviews as nested resources: every operation is scoped
// to a parent campground, and a review id belonging to a different
// campground is treated as not found.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new review Service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// Create persists a review under the given campground. The parent must
// exist at creation time; its review list records insertion order.
func (s *Service) Create(ctx context.Context, campgroundID model.CampgroundID, authorID model.IdentityID, rating int, body string) (*model.Review, error) {
	cg, err := s.storage.GetCampground(ctx, campgroundID)
	if err != nil {
		return nil, err
	}

	review := &model.Review{
		ID:           model.ReviewID(uuid.NewString()),
		CampgroundID: cg.ID,
		AuthorID:     authorID,
		Rating:       rating,
		Body:         body,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.SaveReview(ctx, review); err != nil {
		return nil, err
	}

	cg.ReviewIDs = append(cg.ReviewIDs, review.ID)
	if err := s.storage.SaveCampground(ctx, cg); err != nil {
		return nil, err
	}
	return review, nil
}

// Get retrieves a review scoped to its parent campground. A review that
// exists under a different campground is not found here.
func (s *Service) Get(ctx context.Context, campgroundID model.CampgroundID, reviewID model.ReviewID) (*model.Review, error) {
	review, err := s.storage.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.CampgroundID != campgroundID {
		return nil, model.ErrReviewNotFound
	}
	return review, nil
}

// Delete removes a review and its reference from the parent campground
func (s *Service) Delete(ctx context.Context, campgroundID model.CampgroundID, reviewID model.ReviewID) error {
	review, err := s.Get(ctx, campgroundID, reviewID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteReview(ctx, review.ID); err != nil {
		return err
	}

	cg, err := s.storage.GetCampground(ctx, campgroundID)
	if err != nil {
		if errors.Is(err, model.ErrCampgroundNotFound) {
			// parent deleted concurrently; nothing left to unlink
			return nil
		}
		return err
	}

	cg.RemoveReview(review.ID)
	return s.storage.SaveCampground(ctx, cg)
}

// ListForCampground resolves a campground's reviews in display order,
// pairing each with its author. Dangling references are skipped.
func (s *Service) ListForCampground(ctx context.Context, cg *model.Campground) ([]WithAuthor, error) {
	list := make([]WithAuthor, 0, len(cg.ReviewIDs))
	for _, id := range cg.ReviewIDs {
		review, err := s.storage.GetReview(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrReviewNotFound) {
				continue
			}
			return nil, err
		}

		author, err := s.storage.GetIdentity(ctx, review.AuthorID)
		if err != nil && !errors.Is(err, model.ErrIdentityNotFound) {
			return nil, err
		}
		list = append(list, WithAuthor{Review: review, Author: author})
	}
	return list, nil
}
