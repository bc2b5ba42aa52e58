package adage

import (
	"strings"

	"github.com/google/uuid"
)

// GuestName is the display name recorded on guest-authored episodes.
const GuestName = "Guest"

// guestIDPrefix marks synthesized guest identities in stored rows.
const guestIDPrefix = "guest#"

// Author identifies who performed a write: a registered user known to the
// users table, or an anonymous guest with a synthesized ephemeral identity.
// Guests never earn rewards and their rows are excluded from monthly ranking.
type Author struct {
	id    string
	guest bool
}

// Registered returns the author for a known user id.
func Registered(userID string) Author {
	return Author{id: userID}
}

// NewGuest returns a guest author with a fresh ephemeral identity. Each call
// yields a distinct id so multiple guest episodes on one adage stay separate.
func NewGuest() Author {
	return Author{id: guestIDPrefix + uuid.NewString(), guest: true}
}

// ParseAuthor interprets a caller-supplied user id. The literal "guest"
// requests a synthesized guest identity; anything else is a registered id.
func ParseAuthor(userID string) Author {
	if userID == "guest" {
		return NewGuest()
	}
	return Registered(userID)
}

// ID returns the author's stored identity.
func (a Author) ID() string {
	return a.id
}

// IsGuest reports whether the author is an anonymous guest.
func (a Author) IsGuest() bool {
	return a.guest
}

// IsGuestID reports whether a stored user id was synthesized for a guest.
func IsGuestID(userID string) bool {
	return strings.HasPrefix(userID, guestIDPrefix)
}
