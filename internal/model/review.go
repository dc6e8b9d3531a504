package model

import "time"

// ReviewID uniquely identifies a review
type ReviewID string

// Rating bounds for reviews (inclusive)
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a nested resource: its identifier is only meaningful in the
// context of its parent campground. AuthorID is immutable; only the
// author may delete the review.
type Review struct {
	ID           ReviewID
	CampgroundID CampgroundID
	AuthorID     IdentityID
	Rating       int
	Body         string
	CreatedAt    time.Time
}
