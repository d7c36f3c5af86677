package model

import (
	"time"
)

// Admin is a document in the admins collection. The password digest never
// leaves the repository layer in API responses.
type Admin struct {
	ID             string    `firestore:"id" json:"id"`
	Email          string    `firestore:"email" json:"email"`
	Name           string    `firestore:"name" json:"name"`
	PasswordDigest string    `firestore:"password" json:"-"`
	CreatedAt      time.Time `firestore:"created_at,serverTimestamp" json:"createdAt"`
}

type CreateAdminParams struct {
	Email          string
	Name           string
	PasswordDigest string
}

// Public returns the caller-facing shape of the admin record.
func (a *Admin) Public() map[string]any {
	return map[string]any{
		"id":    a.ID,
		"email": a.Email,
		"name":  a.Name,
	}
}
