// Package reward defines the closed catalog of reward reasons. Codes and
// point values are part of the stored-data contract: ledger rows already
// written reference them, so they must never be renumbered.
package reward

// Reason is the numeric code of a reward reason.
type Reason int

const (
	// RegistrationUser is the one-time sign-up bonus.
	RegistrationUser Reason = 100
	// SendHeart is the bonus for sending a heart to another user.
	SendHeart Reason = 101
	// RegistrationAdage is the bonus for sharing a new adage.
	RegistrationAdage Reason = 102
	// RegistrationEpisode is the bonus for attaching an episode to an adage.
	RegistrationEpisode Reason = 103
	// ThankYou is the receipt of a heart from another user.
	ThankYou Reason = 200
	// ThankYouFromGuest is the receipt of a heart from an anonymous guest.
	ThankYouFromGuest Reason = 201
)

type reasonSpec struct {
	point   int
	message string
	name    string
}

var catalog = map[Reason]reasonSpec{
	RegistrationUser:    {100, "Thank you for signing up!", "RegistrationUser"},
	SendHeart:           {1, "Thank you for sending a heart!", "SendHeart"},
	RegistrationAdage:   {100, "Thank you for sharing an adage!", "RegistrationAdage"},
	RegistrationEpisode: {50, "Thank you for sharing an episode!", "RegistrationEpisode"},
	ThankYou:            {1, "Someone thanked you!", "ThankYou"},
	ThankYouFromGuest:   {1, "A guest thanked you!", "ThankYouFromGuest"},
}

// Point returns the fixed point value awarded for the reason.
func (r Reason) Point() int {
	return catalog[r].point
}

// Message returns the user-facing message attached to the reason.
func (r Reason) Message() string {
	return catalog[r].message
}

// Valid reports whether the code belongs to the catalog.
func (r Reason) Valid() bool {
	_, ok := catalog[r]
	return ok
}

// String returns the catalog name of the reason.
func (r Reason) String() string {
	if spec, ok := catalog[r]; ok {
		return spec.name
	}
	return "Unknown"
}
