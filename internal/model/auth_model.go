package model

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Session is the server-side copy of what the browser used to keep in local
// storage: the bearer token issued by the backend, the role and the profile
// fields the checkout needs.
type Session struct {
	ID           string    `json:"id"`
	Token        string    `json:"-"` // never JSON-encode
	Role         string    `json:"role"`
	FullName     string    `json:"fullName"`
	MobileNumber string    `json:"mobileNumber"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.Role == RoleAdmin
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

type RegisterUserData struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	FirstName         string `json:"first_name,omitempty"`
	LastName          string `json:"last_name,omitempty"`
	PhoneNumber       string `json:"phone_number,omitempty"`
	LandlineNumber    string `json:"landline_number,omitempty"`
	DateOfBirth       string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	DateOfAnniversary string `json:"date_of_anniversary,omitempty"`
	Gender            string `json:"gender,omitempty"`
}
