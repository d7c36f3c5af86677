package model

import (
	"time"
)

// User is a document in the users collection. Field names are the ones the
// mobile client writes, so the mixed naming is load-bearing.
type User struct {
	ID             string     `firestore:"-" json:"id"`
	Email          string     `firestore:"email" json:"email"`
	Username       string     `firestore:"username" json:"username"`
	Friends        []string   `firestore:"friends" json:"friends"`
	Following      []string   `firestore:"following" json:"following,omitempty"`
	FollowersCount int64      `firestore:"followers_count" json:"followersCount,omitempty"`
	ProfilePicture string     `firestore:"profile_picture" json:"profilePicture,omitempty"`
	Suspended      bool       `firestore:"suspended" json:"suspended"`
	LastLogin      *time.Time `firestore:"lastLogin" json:"lastLogin,omitempty"`
	CreatedAt      time.Time  `firestore:"createdAt,serverTimestamp" json:"createdAt"`
	UpdatedAt      *time.Time `firestore:"updated_at" json:"updatedAt,omitempty"`
}

// UserSummary is the projection returned by admin user listings.
type UserSummary struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
	Suspended bool       `json:"suspended"`
}

// AuthUser is the identity-provider view of an end user.
type AuthUser struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// SearchResult is a user search hit annotated with the friendship flag
// relative to the searching user.
type SearchResult struct {
	User
	IsFriend bool `json:"isFriend"`
}

type UpdateProfileParams struct {
	Username       *string
	ProfilePicture *string
}
