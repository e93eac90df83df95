package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User models a storefront account. Plaintext passwords never appear here;
// only the bcrypt hash is stored. The two optional token pairs carry the
// single-use secrets for email verification and password reset, each valid
// strictly before its expiry instant.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	IsVerified   bool   `json:"is_verified"`

	VerificationToken        string    `json:"-"`
	VerificationTokenExpires time.Time `json:"-"`

	ResetToken        string    `json:"-"`
	ResetTokenExpires time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
