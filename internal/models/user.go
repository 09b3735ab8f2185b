// Package models defines the client-side data types shared by the remote API
// layer, the local cache and the session store.
package models

// User is the account/profile record returned by the API and cached locally.
//
// Timestamps are Unix epoch seconds; nullable ones are pointers. Token is
// session-scoped: it arrives on login responses and is handed to the session
// store, but it is never written to the local cache row.
type User struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	PhoneNumber       string `json:"phone_number"`
	ProfilePictureURL string `json:"profile_picture_url"`
	Bio               string `json:"bio"`

	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	StateProvince string `json:"state_province"`
	ZipPostalCode string `json:"zip_postal_code"`
	Country       string `json:"country"`
	Locale        string `json:"locale"`

	RoleID        int    `json:"role_id"`
	AccountStatus string `json:"account_status"`

	IsEmailVerified  bool   `json:"is_email_verified"`
	EmailVerifiedAt  *int64 `json:"email_verified_at"`
	IsPhoneVerified  bool   `json:"is_phone_verified"`
	PhoneVerifiedAt  *int64 `json:"phone_verified_at"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`

	LoginAttempts  int    `json:"login_attempts"`
	LockedUntil    *int64 `json:"locked_until"`
	LastLoginAt    *int64 `json:"last_login_at"`
	LastActivityAt *int64 `json:"last_activity_at"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`

	// Token is transient auth state, present only on login responses.
	Token string `json:"token,omitempty"`
}
