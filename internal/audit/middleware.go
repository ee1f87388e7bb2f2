package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ziadkadry99/portfolio/internal/auth"
)

// Middleware records every state-changing request that passes through it.
// It belongs behind auth.Middleware so the token is in the context; reads
// are not recorded.
func Middleware(store *Store, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			entry := Entry{
				ActorType: ActorSystem,
				Action:    ActionAdminRequest,
				Target:    r.Method + " " + r.URL.Path,
				Status:    status,
				Detail:    middleware.GetReqID(r.Context()),
			}
			if tok := auth.FromContext(r.Context()); tok != nil {
				entry.ActorType = ActorToken
				entry.ActorID = tok.Name
			}
			if err := store.Log(r.Context(), entry); err != nil {
				logger.Warn("recording audit entry", zap.String("target", entry.Target), zap.Error(err))
			}
		})
	}
}
