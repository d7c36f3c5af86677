package model

import (
	"time"
)

// Task is a reusable task template in the tasks collection.
type Task struct {
	ID          string     `firestore:"-" json:"id"`
	Title       string     `firestore:"title" json:"title"`
	Reward      int64      `firestore:"reward" json:"reward"`
	Category    string     `firestore:"category" json:"category"`
	Description string     `firestore:"description" json:"description"`
	Completed   bool       `firestore:"completed" json:"completed"`
	CreatedAt   time.Time  `firestore:"created_at,serverTimestamp" json:"createdAt"`
	UpdatedAt   *time.Time `firestore:"updated_at" json:"updatedAt,omitempty"`
}

type CreateTaskParams struct {
	Title       string
	Reward      int64
	Category    string
	Description string
}

type UpdateTaskParams struct {
	Title       *string
	Reward      *int64
	Category    *string
	Description *string
	Completed   *bool
}

// UserTask is an assignment of a task template to an end user.
type UserTask struct {
	ID          string     `firestore:"-" json:"id"`
	UserID      string     `firestore:"userId" json:"userId"`
	TaskID      string     `firestore:"taskId" json:"taskId"`
	Completed   bool       `firestore:"completed" json:"completed"`
	CompletedAt *time.Time `firestore:"completedAt" json:"completedAt,omitempty"`
}
