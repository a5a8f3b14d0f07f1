// Package identity exposes the authenticated user of a request to the
// order workflow.
package identity

import "github.com/polkiloo/storefront/internal/domain/model"

// LoginRedirect is the surface unauthenticated users are sent to.
const LoginRedirect = "/profile"

// Gate reports whether a user identity is established.
type Gate interface {
	IsAuthenticated() bool
	CurrentUser() (model.UserProfile, bool)
}

// Session is a Gate over a profile resolved from a verified token.
type Session struct {
	profile model.UserProfile
	ok      bool
}

var _ Gate = Session{}

// Anonymous returns a session without identity.
func Anonymous() Session {
	return Session{}
}

// Authenticated returns a session for profile. Profiles missing id or email
// are treated as anonymous.
func Authenticated(profile model.UserProfile) Session {
	if !profile.Valid() {
		return Session{}
	}
	return Session{profile: profile, ok: true}
}

func (s Session) IsAuthenticated() bool {
	return s.ok
}

func (s Session) CurrentUser() (model.UserProfile, bool) {
	if !s.ok {
		return model.UserProfile{}, false
	}
	return s.profile, true
}
