package auth

import (
	"context"
	"net/http"
)

// contextKey keeps this package's context values private: no other package
// can construct a key of this type, so nothing can shadow the session.
type contextKey string

const sessionKey contextKey = "session"

// SessionCookie is the name of the HttpOnly cookie carrying the session JWT.
const SessionCookie = "token"

// RequireAuth enforces authentication on protected routes. A missing or
// invalid session cookie ends the request with 401.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := extractSession(r, tokens)
			if err != nil {
				http.Error(w, `{"error":"unauthorized","message":"valid authentication required"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// OptionalAuth attaches the user identity when a valid session cookie is
// present but never blocks the request. Guests browse the catalogue through
// routes wrapped in this; handlers treat an absent user id as guest mode.
func OptionalAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess, err := extractSession(r, tokens); err == nil && sess.UserID != "" {
				r = r.WithContext(WithSession(r.Context(), sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithSession attaches the authenticated session to the context. The
// middlewares above use it; tests use it to fake a session.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// WithUserID is WithSession for callers that only care about the subject.
func WithUserID(ctx context.Context, userID string) context.Context {
	return WithSession(ctx, Session{UserID: userID})
}

// SessionFromContext returns the authenticated session, or (Session{},
// false) for a guest request.
func SessionFromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionKey).(Session)
	return sess, ok && sess.UserID != ""
}

// UserIDFromContext returns the authenticated user's id, or ("", false) for
// a guest request.
func UserIDFromContext(ctx context.Context) (string, bool) {
	sess, ok := SessionFromContext(ctx)
	return sess.UserID, ok
}

func extractSession(r *http.Request, tokens *TokenService) (Session, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return Session{}, err
	}

	return tokens.Validate(cookie.Value)
}
