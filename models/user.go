package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Role determines what a user may do. Roles are fixed at registration
// time; there is no role-change operation.
type Role string

const (
	RoleCitizen   Role = "citizen"
	RoleAuthority Role = "authority"
	RoleAdmin     Role = "admin"
)

// CanSign reports whether the role may sign or resolve issues.
func (r Role) CanSign() bool {
	return r == RoleAuthority || r == RoleAdmin
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleAuthority, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the system. PasswordHash is the only
// secret we persist and is never serialized.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Phone        *string            `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// HashPassword produces a salted bcrypt digest of plain. bcrypt embeds a
// fresh random salt per call, so hashing the same password twice yields
// two different digests.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword verifies plain against a stored bcrypt hash. It never
// errors: a malformed hash, empty hash, or empty password all read as a
// plain mismatch so callers cannot distinguish the failure modes.
func CheckPassword(plain, hash string) bool {
	if plain == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ComparePassword verifies a candidate password against this user's hash.
func (u *User) ComparePassword(candidate string) bool {
	return CheckPassword(candidate, u.PasswordHash)
}
