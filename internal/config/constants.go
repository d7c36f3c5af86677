package config

import "time"

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Firestore call timeout used by startup checks
const StorePingTimeout = 5 * time.Second

// Background job intervals
const RetentionJobInterval = time.Hour

// Feed and listing page sizes mirror the client defaults
const (
	FeedPageSize        = 10
	FriendsFeedPageSize = 20
	CommentsPageSize    = 20
	AdminLogPageSize    = 100
	AdminPostPageSize   = 50
	UserSearchLimit     = 10
)

// Admin login attempts allowed per IP per minute
const LoginRateLimitPerMin = 5
