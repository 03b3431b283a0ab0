package models

import "time"

// Session is an issued session token.
type Session struct {
	Token    string
	UserName string
	IssuedAt time.Time
}
