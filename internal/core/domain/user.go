package domain

import (
	"strings"
	"time"
)

// RoleKey names one flag of a RoleFlags record.
type RoleKey string

const (
	KeyAdmin   RoleKey = "isAdmin"
	KeyManager RoleKey = "isManager"
	KeyUser    RoleKey = "isUser"
)

// RoleFlags is the capability record stored on a profile. The flags are
// independent: any combination may be true.
type RoleFlags struct {
	IsAdmin   bool `json:"isAdmin" bson:"isAdmin"`
	IsManager bool `json:"isManager" bson:"isManager"`
	IsUser    bool `json:"isUser" bson:"isUser"`
}

// Has reports whether the flag named by key is literally true.
// Unknown keys are never granted.
func (f RoleFlags) Has(key RoleKey) bool {
	switch key {
	case KeyAdmin:
		return f.IsAdmin
	case KeyManager:
		return f.IsManager
	case KeyUser:
		return f.IsUser
	default:
		return false
	}
}

// Role is the display role of a profile, ordered by privilege.
type Role int

const (
	RoleNone Role = iota
	RoleUser
	RoleManager
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleManager:
		return "Manager"
	case RoleUser:
		return "User"
	default:
		return "Unknown"
	}
}

// ResolveRole picks the highest-privilege true flag (Admin > Manager > User).
func ResolveRole(f RoleFlags) Role {
	switch {
	case f.IsAdmin:
		return RoleAdmin
	case f.IsManager:
		return RoleManager
	case f.IsUser:
		return RoleUser
	default:
		return RoleNone
	}
}

// ParseRoleFlags turns a comma separated list such as "manager,user" into
// flags. Unknown names are returned in the second value.
func ParseRoleFlags(s string) (RoleFlags, []string) {
	var f RoleFlags
	var unknown []string
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "":
		case "admin", "isadmin":
			f.IsAdmin = true
		case "manager", "ismanager":
			f.IsManager = true
		case "user", "isuser":
			f.IsUser = true
		default:
			unknown = append(unknown, part)
		}
	}
	return f, unknown
}

// User is the profile document attached to a credential.
type User struct {
	ID        string    `json:"id" bson:"_id"`
	Username  string    `json:"username" bson:"username"`
	Email     string    `json:"email" bson:"email"`
	IsOnline  bool      `json:"isOnline" bson:"isOnline"`
	Avatar    string    `json:"img" bson:"img,omitempty"`
	Bio       string    `json:"bio,omitempty" bson:"bio,omitempty"`
	CreatedAt time.Time `json:"creationTime" bson:"creationTime"`
	LastSeen  time.Time `json:"lastSeen" bson:"lastSeen"`
	Roles     RoleFlags `json:"userRole" bson:"userRole"`
}

// DisplayRole is the resolved role used by admin listings.
func (u *User) DisplayRole() Role { return ResolveRole(u.Roles) }

// DefaultUser is returned when a profile lookup finds nothing.
func DefaultUser() *User {
	return &User{Roles: RoleFlags{IsUser: true}}
}

// UsernameFromEmail returns the local part of an email address.
func UsernameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

// UserPatch carries the profile fields an update may change. Nil fields are left untouched.
type UserPatch struct {
	Username *string
	Email    *string
	Avatar   *string
	Bio      *string
	IsOnline *bool
	Roles    *RoleFlags
}
