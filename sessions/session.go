package sessions

import (
	"time"

	"github.com/jrsteele09/go-vk-client/internal/utils"
)

// DefaultTTL is how long a stored session lives unless configured otherwise.
const DefaultTTL = 3 * time.Hour

// Session holds the authorization state of one user for one scope set.
// A zero Session means "not authorized yet".
type Session struct {
	UserID      *int64 `json:"user_id,omitempty"`      // Set by a successful authorize
	AccessToken string `json:"access_token,omitempty"` // Token sent with every method call
	ExpiresIn   *int64 `json:"expires_in,omitempty"`   // Seconds, as reported by the token endpoint; 0 for offline tokens
	Email       string `json:"email,omitempty"`        // Only present when the email scope was granted
}

// Authenticated reports whether the session carries an access token.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}

// Clone returns a deep copy so stored sessions cannot be modified through a
// returned pointer.
func (s *Session) Clone() *Session {
	if s == nil {
		return &Session{}
	}
	c := &Session{AccessToken: s.AccessToken, Email: s.Email}
	if s.UserID != nil {
		c.UserID = utils.Ptr(*s.UserID)
	}
	if s.ExpiresIn != nil {
		c.ExpiresIn = utils.Ptr(*s.ExpiresIn)
	}
	return c
}
