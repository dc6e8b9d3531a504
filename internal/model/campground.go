package model

import "time"

// CampgroundID uniquely identifies a campground
type CampgroundID string

// Image is a locator for an uploaded campground photo: the public URL
// plus the object-store key needed to delete it later
type Image struct {
	URL string
	Key string
}

// Campground is a shared camping location listed by a user.
// OwnerID is set once at creation and never reassigned; only the owner
// may update or delete the campground. ReviewIDs preserves insertion
// order, which is also display order.
type Campground struct {
	ID          CampgroundID
	Title       string
	Description string
	Location    string
	Price       float64
	Images      []Image
	OwnerID     IdentityID
	ReviewIDs   []ReviewID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasReview reports whether the campground references the given review
func (c *Campground) HasReview(id ReviewID) bool {
	for _, rid := range c.ReviewIDs {
		if rid == id {
			return true
		}
	}
	return false
}

// RemoveReview drops a review reference, preserving the order of the rest
func (c *Campground) RemoveReview(id ReviewID) {
	for i, rid := range c.ReviewIDs {
		if rid == id {
			c.ReviewIDs = append(c.ReviewIDs[:i], c.ReviewIDs[i+1:]...)
			return
		}
	}
}
