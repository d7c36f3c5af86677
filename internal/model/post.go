package model

import (
	"time"
)

// Post is a document in the posts collection. Likes holds user IDs; Comments
// is the embedded array the feed renders without a second read.
type Post struct {
	ID        string    `firestore:"-" json:"id"`
	UserID    string    `firestore:"userId" json:"userId"`
	Username  string    `firestore:"username" json:"username"`
	Content   string    `firestore:"content" json:"content"`
	Likes     []string  `firestore:"likes" json:"likes"`
	Comments  []Comment `firestore:"comments" json:"comments"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// Comment lives both embedded in a post document and as a document in the
// comments collection keyed by post_id for paginated listing.
type Comment struct {
	ID        string    `firestore:"id" json:"id"`
	PostID    string    `firestore:"post_id,omitempty" json:"postId,omitempty"`
	UserID    string    `firestore:"userId" json:"userId"`
	Username  string    `firestore:"username" json:"username"`
	Content   string    `firestore:"content" json:"content"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// LikeDetail names a user who liked a post.
type LikeDetail struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// FeedPage is one page of a cursor-paginated feed. Cursor is the ID of the
// last post in the page, or empty when the feed is exhausted.
type FeedPage struct {
	Posts  []Post `json:"posts"`
	Cursor string `json:"lastPost,omitempty"`
}

// CommentPage mirrors FeedPage for comment listings.
type CommentPage struct {
	Comments []Comment `json:"comments"`
	Cursor   string    `json:"lastComment,omitempty"`
}
