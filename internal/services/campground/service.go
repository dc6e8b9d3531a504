package campground

import (
	"context"

	"github.com/google/uuid"

	"github.com/rfallows/campgrounds/internal/dependencies/clock"
	"github.com/rfallows/campgrounds/internal/model"
	"github.com/rfallows/campgrounds/internal/storage"
)

// Input holds the validated fields of a campground submission
type Input struct {
	Title       string
	Description string
	Location    string
	Price       float64
}

// Service manages campground records. Ownership is established once at
// creation and never reassigned; authorization against it happens in the
// request pipeline before these methods run.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new campground Service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// Create persists a new campground owned by ownerID. Images must already
// be uploaded; on persistence failure the caller is responsible for
// cleaning them up.
func (s *Service) Create(ctx context.Context, ownerID model.IdentityID, in Input, images []model.Image) (*model.Campground, error) {
	now := s.clock.Now()
	cg := &model.Campground{
		ID:          model.CampgroundID(uuid.NewString()),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Price:       in.Price,
		Images:      images,
		OwnerID:     ownerID,
		ReviewIDs:   []model.ReviewID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.storage.SaveCampground(ctx, cg); err != nil {
		return nil, err
	}
	return cg, nil
}

// Get retrieves a campground by id
func (s *Service) Get(ctx context.Context, id model.CampgroundID) (*model.Campground, error) {
	return s.storage.GetCampground(ctx, id)
}

// List returns all campgrounds in creation order
func (s *Service) List(ctx context.Context) ([]*model.Campground, error) {
	return s.storage.ListCampgrounds(ctx)
}

// Update applies new field values and appends any newly uploaded images.
// The owner reference is never changed.
func (s *Service) Update(ctx context.Context, id model.CampgroundID, in Input, newImages []model.Image) (*model.Campground, error) {
	cg, err := s.storage.GetCampground(ctx, id)
	if err != nil {
		return nil, err
	}

	cg.Title = in.Title
	cg.Description = in.Description
	cg.Location = in.Location
	cg.Price = in.Price
	cg.Images = append(cg.Images, newImages...)
	cg.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveCampground(ctx, cg); err != nil {
		return nil, err
	}
	return cg, nil
}

// Delete removes a campground and cascades to its reviews. The deleted
// record is returned so the caller can release its stored images.
// A concurrent delete surfaces as not-found, not a crash.
func (s *Service) Delete(ctx context.Context, id model.CampgroundID) (*model.Campground, error) {
	cg, err := s.storage.GetCampground(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, reviewID := range cg.ReviewIDs {
		if err := s.storage.DeleteReview(ctx, reviewID); err != nil {
			return nil, err
		}
	}

	if err := s.storage.DeleteCampground(ctx, id); err != nil {
		return nil, err
	}
	return cg, nil
}
