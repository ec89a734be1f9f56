package auth

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"attendweb/internal/backend"
)

// ErrAuthenticationFailed covers bad credentials, transport failures during
// login and undecodable issued tokens. Callers show a generic notice and
// never retry.
var ErrAuthenticationFailed = errors.New("authentication failed")

// Service owns all session writes. Guards and views only ever read the
// session it produces.
type Service struct {
	api         *backend.Client
	store       Store
	defaultRole string
}

// NewService builds the auth service. defaultRole is used when the access
// token carries no role claim; the deployed backend does not always embed
// one (see DESIGN.md).
func NewService(api *backend.Client, store Store, defaultRole string) *Service {
	if defaultRole == "" {
		defaultRole = RoleTeacher
	}
	return &Service{api: api, store: store, defaultRole: defaultRole}
}

// Login exchanges credentials for tokens, resolves the user's role and
// creates a new session. All-or-nothing: on any failure nothing is stored
// and ErrAuthenticationFailed is returned.
func (s *Service) Login(ctx context.Context, username, password string) (string, Session, error) {
	pair, err := s.api.Login(ctx, username, password)
	if err != nil {
		log.Printf("login for %q rejected: %v", username, err)
		return "", Session{}, ErrAuthenticationFailed
	}

	claims, err := Decode(pair.Access)
	if err != nil {
		log.Printf("login for %q issued undecodable token: %v", username, err)
		return "", Session{}, ErrAuthenticationFailed
	}

	role := claims.Role
	if role == "" {
		role = s.defaultRole
	}

	sess := Session{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
		User:         &Profile{Username: username, Role: role},
	}
	sid := uuid.NewString()
	if err := s.store.Put(ctx, sid, sess); err != nil {
		return "", Session{}, ErrAuthenticationFailed
	}
	return sid, sess, nil
}

// Logout purges the session. It always succeeds; a storage error only gets
// logged because the cookie is dropped regardless.
func (s *Service) Logout(ctx context.Context, sid string) {
	if sid == "" {
		return
	}
	if err := s.store.Delete(ctx, sid); err != nil {
		log.Printf("session delete failed: %v", err)
	}
}

// Restore loads the session behind sid and re-checks the stored access
// token. A malformed or expired token, or a session without a cached
// profile, purges the session and reports an absent user. The token is not
// revalidated against the backend; a revoked token surfaces on the next API
// call.
func (s *Service) Restore(ctx context.Context, sid string) (Session, bool) {
	if sid == "" {
		return Session{}, false
	}
	sess, ok, err := s.store.Get(ctx, sid)
	if err != nil || !ok {
		return Session{}, false
	}
	if sess.AccessToken == "" || sess.User == nil {
		s.Logout(ctx, sid)
		return Session{}, false
	}
	if _, err := Decode(sess.AccessToken); err != nil {
		s.Logout(ctx, sid)
		return Session{}, false
	}
	return sess, true
}
