package transport

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"storefront/pkg/domain/model"
)

// authedHandler is a handler that only runs for an authenticated caller
// holding the route's required role.
type authedHandler func(w http.ResponseWriter, r *http.Request, caller *model.Account)

// withRole authenticates the bearer token, loads the account and checks the
// role before the wrapped handler runs. Failures short-circuit with no side
// effects.
func (h *Handler) withRole(required model.Role, next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing bearer token", "")
			return
		}

		caller, err := h.gate.Authenticate(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication failed", "")
			return
		}
		if err := h.gate.Authorize(caller, required); err != nil {
			writeDomainError(w, err)
			return
		}

		next(w, r, caller)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	return token, token != ""
}

func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL.String(),
			"remoteAddr": r.RemoteAddr,
		}).Info("incoming request")
		next.ServeHTTP(w, r)
	})
}
