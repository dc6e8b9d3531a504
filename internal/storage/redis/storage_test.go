package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/rfallows/campgrounds/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Identity tests

func (s *StorageSuite) TestSaveAndGetIdentity() {
	identity := &model.Identity{
		ID:        "u_1",
		Username:  "alice",
		CreatedAt: time.Now(),
	}

	err := s.storage.SaveIdentity(s.ctx, identity)
	s.Require().NoError(err)

	got, err := s.storage.GetIdentity(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal(identity.ID, got.ID)
	s.Equal(identity.Username, got.Username)
}

func (s *StorageSuite) TestGetIdentityNotFound() {
	_, err := s.storage.GetIdentity(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrIdentityNotFound)
}

// Credential tests

func (s *StorageSuite) TestSaveAndGetCredentialByUsername() {
	cred := &model.Credential{
		IdentityID:   "u_1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveCredential(s.ctx, cred)
	s.Require().NoError(err)

	got, err := s.storage.GetCredentialByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.IdentityID("u_1"), got.IdentityID)
	s.Equal("hash123", got.PasswordHash)
}

func (s *StorageSuite) TestGetCredentialByUnknownUsername() {
	_, err := s.storage.GetCredentialByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrIdentityNotFound)
}

// Campground tests

func (s *StorageSuite) TestSaveAndGetCampground() {
	cg := &model.Campground{
		ID:        "cg_1",
		Title:     "Pine Ridge",
		Location:  "Colorado",
		Price:     25,
		OwnerID:   "u_1",
		Images:    []model.Image{{URL: "https://img/1", Key: "k1"}},
		ReviewIDs: []model.ReviewID{"r_1", "r_2"},
	}

	err := s.storage.SaveCampground(s.ctx, cg)
	s.Require().NoError(err)

	got, err := s.storage.GetCampground(s.ctx, "cg_1")
	s.Require().NoError(err)
	s.Equal(cg.Title, got.Title)
	s.Equal(cg.Images, got.Images)
	s.Equal(cg.ReviewIDs, got.ReviewIDs)
}

func (s *StorageSuite) TestListCampgrounds() {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []model.CampgroundID{"cg_1", "cg_2"} {
		err := s.storage.SaveCampground(s.ctx, &model.Campground{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		s.Require().NoError(err)
	}

	list, err := s.storage.ListCampgrounds(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(model.CampgroundID("cg_1"), list[0].ID)
}

func (s *StorageSuite) TestDeleteCampgroundRemovesFromIndex() {
	err := s.storage.SaveCampground(s.ctx, &model.Campground{ID: "cg_1"})
	s.Require().NoError(err)

	err = s.storage.DeleteCampground(s.ctx, "cg_1")
	s.Require().NoError(err)

	_, err = s.storage.GetCampground(s.ctx, "cg_1")
	s.ErrorIs(err, model.ErrCampgroundNotFound)

	list, err := s.storage.ListCampgrounds(s.ctx)
	s.Require().NoError(err)
	s.Empty(list)
}

// Review tests

func (s *StorageSuite) TestSaveAndGetReview() {
	review := &model.Review{
		ID:           "r_1",
		CampgroundID: "cg_1",
		AuthorID:     "u_2",
		Rating:       4,
		Body:         "Great spot",
	}

	err := s.storage.SaveReview(s.ctx, review)
	s.Require().NoError(err)

	got, err := s.storage.GetReview(s.ctx, "r_1")
	s.Require().NoError(err)
	s.Equal(review.CampgroundID, got.CampgroundID)
	s.Equal(review.Rating, got.Rating)
}

func (s *StorageSuite) TestDeleteReview() {
	_ = s.storage.SaveReview(s.ctx, &model.Review{ID: "r_1"})

	err := s.storage.DeleteReview(s.ctx, "r_1")
	s.Require().NoError(err)

	_, err = s.storage.GetReview(s.ctx, "r_1")
	s.ErrorIs(err, model.ErrReviewNotFound)
}

// Session tests

func (s *StorageSuite) TestSessionRoundTrip() {
	session := &model.Session{
		Token:      "sess_abc",
		IdentityID: "u_1",
		Flash:      &model.Flash{Kind: model.FlashSuccess, Text: "Welcome back!"},
		ExpiresAt:  time.Now().Add(time.Hour),
	}

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	got, err := s.storage.GetSession(s.ctx, "sess_abc")
	s.Require().NoError(err)
	s.Equal(session.IdentityID, got.IdentityID)
	s.Require().NotNil(got.Flash)
	s.Equal("Welcome back!", got.Flash.Text)
}

func (s *StorageSuite) TestSessionHasTTL() {
	session := &model.Session{
		Token:     "sess_abc",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	_ = s.storage.SaveSession(s.ctx, session)

	ttl := s.mini.TTL(sessionKey("sess_abc"))
	s.True(ttl > 0, "session should carry a TTL")
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, &model.Session{Token: "sess_abc", ExpiresAt: time.Now().Add(time.Hour)})

	err := s.storage.DeleteSession(s.ctx, "sess_abc")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "sess_abc")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
