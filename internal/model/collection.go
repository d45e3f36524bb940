package model

import "time"

// CollectionID identifies a collection
type CollectionID string

// Collection is a user-curated set of photos. The share facet fields
// (Slug, UserSlug, ShareToken, ShareExpiresAt) are either all unset
// (not shared) or all populated (shared); a collection has at most one
// active share token, and regenerating replaces the previous one.
type Collection struct {
	ID          CollectionID
	Name        string
	Description string
	UserID      string // opaque owner id from the identity store
	CreatedAt   time.Time

	Slug           string
	UserSlug       string
	ShareToken     string
	ShareExpiresAt *time.Time
}

// Shared reports whether the collection currently has an active share
// facet. Expiry is a read-time classification, not a stored state.
func (c *Collection) Shared() bool {
	return c.ShareToken != ""
}

// ClearShare resets the share facet to the unshared state
func (c *Collection) ClearShare() {
	c.Slug = ""
	c.UserSlug = ""
	c.ShareToken = ""
	c.ShareExpiresAt = nil
}

// CollectionPhoto is the membership of one photo in one collection
type CollectionPhoto struct {
	CollectionID CollectionID
	PhotoID      PhotoID
	AddedAt      time.Time
}
