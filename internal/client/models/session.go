// Package models defines the client-side data types shared by the session,
// submission and content packages.
package models

import "time"

// Profile is the locally cached snapshot of the server-side user record.
type Profile struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	Gender          string `json:"gender,omitempty"`
	DateOfBirth     string `json:"dob,omitempty"`
	MaritalStatus   string `json:"maritalStatus,omitempty"`
	ProfileImageRef string `json:"profileImage,omitempty"`
}

// Session is the persisted proof of authentication plus cached profile data.
// Token and UserID are always both set.
type Session struct {
	Token   string
	UserID  string
	Profile Profile

	// ExpiresAt is taken from the token "exp" claim; zero when unknown.
	ExpiresAt time.Time
}

// Expired reports whether the token is known to be expired at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// ProfileUpdate carries the editable profile fields. Nil fields are left as is.
type ProfileUpdate struct {
	Name            *string
	Address         *string
	Gender          *string
	DateOfBirth     *string
	MaritalStatus   *string
	ProfileImageRef *string
}

// Registration is the sign-up form payload.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

// User is the user object returned by the login and register endpoints.
// The backend sends "id" on login and "_id" on register.
type User struct {
	ID            string `json:"id"`
	MongoID       string `json:"_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Gender        string `json:"gender"`
	DateOfBirth   string `json:"dob"`
	MaritalStatus string `json:"maritalStatus"`
	ProfileImage  string `json:"profileImage"`
}

// Identifier returns whichever id field the backend populated.
func (u User) Identifier() string {
	if u.ID != "" {
		return u.ID
	}
	return u.MongoID
}

// Profile converts the server user into the cached snapshot.
func (u User) Profile() Profile {
	return Profile{
		ID:              u.Identifier(),
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		Address:         u.Address,
		Gender:          u.Gender,
		DateOfBirth:     u.DateOfBirth,
		MaritalStatus:   u.MaritalStatus,
		ProfileImageRef: u.ProfileImage,
	}
}
