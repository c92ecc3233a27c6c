package model

// UserProfile is returned by GET /api/profile.
type UserProfile struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	PhoneNumber       string `json:"phoneNumber"`
	LandlineNumber    string `json:"landlineNumber"`
	DateOfBirth       string `json:"dateOfBirth"`
	DateOfAnniversary string `json:"dateOfAnniversary"`
	Gender            string `json:"gender"` // Male, Female, Other or ''
	Points            int    `json:"points"`
}
