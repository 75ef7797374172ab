package model

import (
	"encoding/json"
	"time"
)

// User is the cached profile of a logged-in mini-program user, as returned
// by the /wechat/login exchange.
type User struct {
	ID          int    `json:"id"`
	OpenID      string `json:"openid"`
	Nickname    string `json:"nickname"`
	Avatar      string `json:"avatar"`
	Phone       string `json:"phone,omitempty"`
	TicketCount int    `json:"ticket_count"`
	LastLogin   string `json:"last_login,omitempty"`
}

// LastLoginTime parses the last_login timestamp. The zero time is returned
// when the field is absent or unparseable, which callers treat as "unknown".
func (u *User) LastLoginTime() time.Time {
	if u.LastLogin == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, u.LastLogin); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Session pairs the auth token with the cached user profile. The two are
// always persisted together or not at all.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Envelope is the business-level response wrapper every backend endpoint
// returns. Success=false carries a server-side failure message and optional
// error code distinct from the HTTP status.
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	ErrorCode string          `json:"error_code,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// LoginParams is the request body of the /wechat/login exchange.
type LoginParams struct {
	Code      string `json:"code"`
	Nickname  string `json:"nickname,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// LoginData is the payload of a successful /wechat/login exchange.
type LoginData struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// LoginResult is the outcome of the full login flow. Business-level failures
// are reported via Success=false and Message, never via an error, so callers
// can render inline feedback.
type LoginResult struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// PhoneResult is the outcome of the /wechat/phone exchange.
type PhoneResult struct {
	Success bool   `json:"success"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
}

// Banner is a home-page carousel entry.
type Banner struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
	Link  string `json:"link,omitempty"`
}

// Concert is a concert listing entry.
type Concert struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	Date  string `json:"date"`
	Venue string `json:"venue"`
	Price int    `json:"price"`
	Image string `json:"image,omitempty"`
}
