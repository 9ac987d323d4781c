package models

import "time"

type UserType string

const (
	UserTypePassenger UserType = "passenger"
	UserTypeDriver    UserType = "driver"
	UserTypeAdmin     UserType = "admin"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	UserType  UserType  `json:"user_type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Driver fields.
	LicenseNumber string   `json:"license_number,omitempty"`
	IsVerified    bool     `json:"is_verified,omitempty"`
	IsAvailable   bool     `json:"is_available,omitempty"`
	VehicleID     *string  `json:"vehicle_id,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	RatingCount   int      `json:"rating_count,omitempty"`

	// Passenger moderation fields, managed by admins.
	IsBanned       bool   `json:"is_banned,omitempty"`
	BanReason      string `json:"ban_reason,omitempty"`
	IsPermanentBan bool   `json:"is_permanent_ban,omitempty"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsDriver() bool {
	return u.UserType == UserTypeDriver
}

func (u *User) IsPassenger() bool {
	return u.UserType == UserTypePassenger
}

func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

// Sanitized returns a copy with the password hash stripped, for display
// and for returning to CLI callers.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
