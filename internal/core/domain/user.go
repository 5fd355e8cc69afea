package domain

import "errors"

// Role is the side of a donation a user registers for.
type Role string

const (
	RoleDonor     Role = "Donor"
	RoleRecipient Role = "Recipient"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrUnauthenticated  = errors.New("not authenticated")
	ErrInvalidRole      = errors.New("role must be Donor or Recipient")
)

// Complement returns the role a user of role r is matched against.
// Anything that is not a Donor is treated as a Recipient.
func (r Role) Complement() Role {
	if r == RoleDonor {
		return RoleRecipient
	}
	return RoleDonor
}

// Valid reports whether r is one of the two supported roles.
func (r Role) Valid() bool {
	return r == RoleDonor || r == RoleRecipient
}

// User is a registered donor or recipient. Rows are never updated or deleted.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	Age          int    `json:"age"`
	BloodGroup   string `json:"blood_group"`
	Phone        string `json:"phone"`
	Organ        string `json:"organ"`
}

// MatchCriteria selects the counterparts of a user: same organ, same blood
// group, the given role, and any id other than ExcludeID.
type MatchCriteria struct {
	Organ      string
	BloodGroup string
	Role       Role
	ExcludeID  int64
}

// CriteriaFor builds the match criteria for u.
func CriteriaFor(u *User) MatchCriteria {
	return MatchCriteria{
		Organ:      u.Organ,
		BloodGroup: u.BloodGroup,
		Role:       u.Role.Complement(),
		ExcludeID:  u.ID,
	}
}
