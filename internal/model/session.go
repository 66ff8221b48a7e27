package model

import "time"

// Session is a server-side login session referenced by the session cookie
type Session struct {
	ID        string
	UserID    int
	ExpiresAt time.Time
}
