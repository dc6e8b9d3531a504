package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rfallows/campgrounds/internal/model"
	"github.com/rfallows/campgrounds/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	identities    map[model.IdentityID]*model.Identity
	credentials   map[model.IdentityID]*model.Credential
	usernameIndex map[string]model.IdentityID
	campgrounds   map[model.CampgroundID]*model.Campground
	reviews       map[model.ReviewID]*model.Review
	sessions      map[string]*model.Session
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		identities:    make(map[model.IdentityID]*model.Identity),
		credentials:   make(map[model.IdentityID]*model.Credential),
		usernameIndex: make(map[string]model.IdentityID),
		campgrounds:   make(map[model.CampgroundID]*model.Campground),
		reviews:       make(map[model.ReviewID]*model.Review),
		sessions:      make(map[string]*model.Session),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Identity operations

func (s *Storage) SaveIdentity(ctx context.Context, identity *model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identities[identity.ID] = identity
	return nil
}

func (s *Storage) GetIdentity(ctx context.Context, id model.IdentityID) (*model.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.identities[id]
	if !ok {
		return nil, model.ErrIdentityNotFound
	}
	return identity, nil
}

// Credential operations

func (s *Storage) SaveCredential(ctx context.Context, cred *model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[cred.IdentityID] = cred
	s.usernameIndex[cred.Username] = cred.IdentityID
	return nil
}

func (s *Storage) GetCredentialByUsername(ctx context.Context, username string) (*model.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identityID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrIdentityNotFound
	}
	cred, ok := s.credentials[identityID]
	if !ok {
		return nil, model.ErrIdentityNotFound
	}
	return cred, nil
}

// Campground operations

func (s *Storage) SaveCampground(ctx context.Context, cg *model.Campground) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campgrounds[cg.ID] = cg
	return nil
}

func (s *Storage) GetCampground(ctx context.Context, id model.CampgroundID) (*model.Campground, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cg, ok := s.campgrounds[id]
	if !ok {
		return nil, model.ErrCampgroundNotFound
	}
	return cg, nil
}

func (s *Storage) ListCampgrounds(ctx context.Context) ([]*model.Campground, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*model.Campground, 0, len(s.campgrounds))
	for _, cg := range s.campgrounds {
		list = append(list, cg)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (s *Storage) DeleteCampground(ctx context.Context, id model.CampgroundID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.campgrounds, id)
	return nil
}

// Review operations

func (s *Storage) SaveReview(ctx context.Context, review *model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[review.ID] = review
	return nil
}

func (s *Storage) GetReview(ctx context.Context, id model.ReviewID) (*model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	review, ok := s.reviews[id]
	if !ok {
		return nil, model.ErrReviewNotFound
	}
	return review, nil
}

func (s *Storage) DeleteReview(ctx context.Context, id model.ReviewID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reviews, id)
	return nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
