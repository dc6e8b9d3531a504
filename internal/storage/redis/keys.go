package redis

import (
	"fmt"

	"github.com/rfallows/campgrounds/internal/model"
)

// Key prefix for all application data
const keyPrefix = "campgrounds"

// Key generation functions for each entity type

// identityKey returns the Redis key for an Identity
func identityKey(id model.IdentityID) string {
	return fmt.Sprintf("%s:identity:%s", keyPrefix, id)
}

// credentialKey returns the Redis key for a Credential
func credentialKey(id model.IdentityID) string {
	return fmt.Sprintf("%s:credential:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> identity_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// campgroundKey returns the Redis key for a Campground
func campgroundKey(id model.CampgroundID) string {
	return fmt.Sprintf("%s:campground:%s", keyPrefix, id)
}

// campgroundIndexKey returns the Redis key for the SET of all campground keys
func campgroundIndexKey() string {
	return fmt.Sprintf("%s:idx:campgrounds", keyPrefix)
}

// reviewKey returns the Redis key for a Review
func reviewKey(id model.ReviewID) string {
	return fmt.Sprintf("%s:review:%s", keyPrefix, id)
}

// sessionKey returns the Redis key for a Session
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}
