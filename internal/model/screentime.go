package model

import (
	"time"
)

// ScreentimeRecord is one usage sample from the screentime collection.
// Duration is in minutes.
type ScreentimeRecord struct {
	UserID    string    `firestore:"userId" json:"userId"`
	Duration  float64   `firestore:"duration" json:"duration"`
	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
}
