package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"showroom/internal/log"
)

// Visitors are anonymous. Their id travels in a header or a cookie and is
// issued on the first request that has neither.
const (
	HeaderVisitorID = "X-Visitor-ID"
	visitorCookie   = "visitor_id"
	visitorMaxAge   = 365 * 24 * 60 * 60
)

type visitorKey struct{}

func visitorFromRequest(r *http.Request) (string, bool) {
	if id, ok := parseVisitorID(r.Header.Get(HeaderVisitorID)); ok {
		return id, true
	}
	if c, err := r.Cookie(visitorCookie); err == nil {
		if id, ok := parseVisitorID(c.Value); ok {
			return id, true
		}
	}
	return "", false
}

func parseVisitorID(raw string) (string, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func (s *Server) withVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := visitorFromRequest(r)
		if !ok {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     visitorCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   visitorMaxAge,
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(HeaderVisitorID, id)

		ctx := context.WithValue(r.Context(), visitorKey{}, id)
		ctx = log.WithLogger(ctx, log.FromContext(ctx).With(log.FieldVisitorID, id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func visitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}
