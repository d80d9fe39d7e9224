package models

// Profile represents one candidate a user can like or reject.
type Profile struct {
	// Name is the display name ("First Last").
	Name string `json:"name"`

	// Age in years.
	Age int `json:"age"`

	// Location is a "City, Country" string.
	Location string `json:"location"`

	// Photo is the URL of the profile picture.
	Photo string `json:"photo"`

	// Email is the contact address. It doubles as the unique identifier.
	Email string `json:"email"`

	// Bio is a short free-text introduction.
	Bio string `json:"bio"`
}

// SameAs reports whether p and other identify the same person.
func (p Profile) SameAs(other Profile) bool {
	return p.Email == other.Email
}
