package models

import "time"

// UserRole is the role a signed-in user is currently operating as.
// It only changes how listing creation is framed; it never restricts reads.
type UserRole string

const (
	RoleOwner  UserRole = "owner"  // rabbit owner seeking care
	RoleSitter UserRole = "sitter" // sitter offering services
	RoleAdmin  UserRole = "admin"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleOwner, RoleSitter, RoleAdmin:
		return true
	}
	return false
}

// Profile is the application-level record for an authenticated user.
// The Firestore document ID is the Firebase Auth UID; the UID is also stored
// inside the document so queries and clients see a self-contained record.
type Profile struct {
	UID         string    `json:"uid" firestore:"uid"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName" firestore:"displayName"`
	PhotoURL    string    `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	ActiveRole  UserRole  `json:"activeRole" firestore:"activeRole"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
