package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-growth-diary/internal/domain/sessions"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionContext:
// - Si viene X-Session-ID y la sesión existe, la deja en el contexto.
// - Si no hay header o la sesión no existe, el request sigue igual; cada
//   handler decide si la exige (los endpoints de /session no la necesitan).
func SessionContext(svc *sessions.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(sessions.HeaderSessionID))
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := svc.GetByID(r.Context(), id)
			if err != nil {
				// No cortamos acá para no acoplar. El handler decide el 401.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSession(ctx context.Context) (sessions.Session, bool) {
	v := ctx.Value(sessionKey)
	if v == nil {
		return sessions.Session{}, false
	}
	s, ok := v.(sessions.Session)
	return s, ok
}
