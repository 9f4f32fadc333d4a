package models

import "time"

// UserSession is the logged-in user's identity as held by the session store.
// Points here are a cached copy; the store document is authoritative.
type UserSession struct {
	SessionID    string    `json:"session_id"`
	User         User      `json:"user"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
}
