package identity

import "strings"

// GuestID is the sentinel identity used for anonymous visitors. Daily-limit
// counting treats all guests as a single identity.
const GuestID = "guest"

type Identity string

func (i Identity) IsGuest() bool {
	return string(i) == GuestID
}

func Normalize(raw string) Identity {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identity(GuestID)
	}
	return Identity(raw)
}
