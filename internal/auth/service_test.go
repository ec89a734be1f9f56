package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"attendweb/internal/backend"
)

// loginBackend fakes the token endpoint: admin/admin123 succeeds and the
// issued access token carries the claims it was configured with.
func loginBackend(t *testing.T, claims jwt.MapClaims) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login/" {
			http.NotFound(w, r)
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "admin" || body["password"] != "admin123" {
			http.Error(w, `{"detail":"No active account found"}`, http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access":  signToken(t, claims),
			"refresh": "refresh-token",
		})
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestLoginPopulatesSession(t *testing.T) {
	ctx := context.Background()
	ts := loginBackend(t, jwt.MapClaims{"role": "admin", "exp": time.Now().Add(time.Hour).Unix()})
	store := NewMemoryStore(time.Hour)
	svc := NewService(backend.New(ts.URL), store, RoleTeacher)

	sid, sess, err := svc.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.User == nil || sess.User.Role != RoleAdmin || sess.User.Username != "admin" {
		t.Fatalf("unexpected profile %+v", sess.User)
	}
	if sess.AccessToken == "" || sess.RefreshToken != "refresh-token" {
		t.Fatalf("tokens not stored: %+v", sess)
	}

	restored, ok := svc.Restore(ctx, sid)
	if !ok || restored.User == nil || restored.User.Role != RoleAdmin {
		t.Fatalf("restore after login failed: ok=%v sess=%+v", ok, restored)
	}
}

func TestLoginRoleFallback(t *testing.T) {
	// The backend's minimal tokens may carry no role claim; the configured
	// fallback applies.
	ts := loginBackend(t, jwt.MapClaims{"user_id": 4, "exp": time.Now().Add(time.Hour).Unix()})
	svc := NewService(backend.New(ts.URL), NewMemoryStore(time.Hour), RoleTeacher)

	_, sess, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.User.Role != RoleTeacher {
		t.Fatalf("expected fallback role teacher, got %q", sess.User.Role)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	ts := loginBackend(t, jwt.MapClaims{"role": "admin"})
	store := NewMemoryStore(time.Hour)
	svc := NewService(backend.New(ts.URL), store, RoleTeacher)

	sid, _, err := svc.Login(context.Background(), "admin", "wrong")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
	if sid != "" {
		t.Fatal("expected no session id on failed login")
	}
}

func TestLoginUndecodableToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"access": "not-a-jwt", "refresh": "r"})
	}))
	t.Cleanup(ts.Close)
	svc := NewService(backend.New(ts.URL), NewMemoryStore(time.Hour), RoleTeacher)

	if _, _, err := svc.Login(context.Background(), "admin", "admin123"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestLogoutPurgesSession(t *testing.T) {
	ctx := context.Background()
	ts := loginBackend(t, jwt.MapClaims{"role": "admin", "exp": time.Now().Add(time.Hour).Unix()})
	store := NewMemoryStore(time.Hour)
	svc := NewService(backend.New(ts.URL), store, RoleTeacher)

	sid, _, err := svc.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	svc.Logout(ctx, sid)

	if _, ok := svc.Restore(ctx, sid); ok {
		t.Fatal("expected session gone after logout")
	}
	if _, ok, _ := store.Get(ctx, sid); ok {
		t.Fatal("expected persisted session purged")
	}
}

func TestRestorePurgesBadToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	svc := NewService(backend.New("http://unreachable.invalid"), store, RoleTeacher)

	cases := map[string]Session{
		"malformed": {AccessToken: "garbage", User: &Profile{Username: "x", Role: RoleAdmin}},
		"expired": {
			AccessToken: signToken(t, jwt.MapClaims{"role": "admin", "exp": time.Now().Add(-time.Minute).Unix()}),
			User:        &Profile{Username: "x", Role: RoleAdmin},
		},
		"no profile": {AccessToken: signToken(t, jwt.MapClaims{"role": "admin", "exp": time.Now().Add(time.Hour).Unix()})},
	}
	for name, sess := range cases {
		sid := "sid-" + name
		if err := store.Put(ctx, sid, sess); err != nil {
			t.Fatalf("%s: put: %v", name, err)
		}
		if _, ok := svc.Restore(ctx, sid); ok {
			t.Fatalf("%s: expected restore to fail", name)
		}
		if _, ok, _ := store.Get(ctx, sid); ok {
			t.Fatalf("%s: expected session purged", name)
		}
	}
}
