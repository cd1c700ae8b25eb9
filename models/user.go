// models/user.go
package models

import "time"

// Principal is the authenticated identity making a request.
type Principal struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Session is what a successful password sign-in hands back to the app.
type Session struct {
	Principal    Principal `json:"principal"`
	IDToken      string    `json:"token"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresIn    int64     `json:"expiresIn"`
}

// UserRegistration is the sign-up form.
type UserRegistration struct {
	FirstName       string `json:"firstname" validate:"required"`
	LastName        string `json:"lastname" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func (r UserRegistration) DisplayName() string {
	return r.FirstName + " " + r.LastName
}

// UserProfile is the users/{uid} document.
type UserProfile struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstname"`
	LastName    string    `json:"lastname"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	IsTourGuide bool      `json:"is_tourguide"`
	CreatedAt   time.Time `json:"created_at"`
}
