package model

import "time"

// FlashKind names the channel a flash message is delivered on
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot message queued for exactly one subsequent response
type Flash struct {
	Kind FlashKind
	Text string
}

// Session is a server-side record keyed by the opaque token held in the
// client cookie. IdentityID is empty while the session is anonymous.
type Session struct {
	Token      string
	IdentityID IdentityID // empty for anonymous sessions
	Flash      *Flash     // cleared after a single read
	CreatedAt  time.Time
	TouchedAt  time.Time
	ExpiresAt  time.Time
}

// Anonymous reports whether the session has no identity bound to it
func (s *Session) Anonymous() bool {
	return s.IdentityID == ""
}
