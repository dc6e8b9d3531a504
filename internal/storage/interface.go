package storage

import (
	"context"

	"github.com/rfallows/campgrounds/internal/model"
)

// Storage defines the interface for data persistence.
// Each entity type lives in its own addressable store; relationships are
// typed ids resolved back through the store.
type Storage interface {
	// Identity operations
	SaveIdentity(ctx context.Context, identity *model.Identity) error
	GetIdentity(ctx context.Context, id model.IdentityID) (*model.Identity, error)

	// Credential operations
	SaveCredential(ctx context.Context, cred *model.Credential) error
	GetCredentialByUsername(ctx context.Context, username string) (*model.Credential, error)

	// Campground operations
	SaveCampground(ctx context.Context, cg *model.Campground) error
	GetCampground(ctx context.Context, id model.CampgroundID) (*model.Campground, error)
	ListCampgrounds(ctx context.Context) ([]*model.Campground, error)
	DeleteCampground(ctx context.Context, id model.CampgroundID) error

	// Review operations
	SaveReview(ctx context.Context, review *model.Review) error
	GetReview(ctx context.Context, id model.ReviewID) (*model.Review, error)
	DeleteReview(ctx context.Context, id model.ReviewID) error

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
}
