package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"dms/internal/auth"
	"dms/internal/httputil"
)

// ActorHeader carries the actor id when no JWT verifier is configured (dev/test only)
const ActorHeader = "X-Actor-Id"

// AuthMiddleware resolves the acting user and stores its id in the request context.
// With a verifier the bearer token is required. Without one the actor comes from
// the X-Actor-Id header or falls back to devActorID.
func AuthMiddleware(verifier auth.JWTVerifier, devActorID int, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var actorID int
			if verifier != nil {
				id, ok := bearerActor(w, r, verifier)
				if !ok {
					return
				}
				actorID = id
			} else {
				actorID = devActor(r, devActorID)
				if actorID <= 0 {
					httputil.RespondError(w, http.StatusUnauthorized, "actor id required")
					return
				}
				logger.Debug("request attributed to dev actor", "actor_id", actorID, "path", r.URL.Path)
			}

			next.ServeHTTP(w, httputil.WithActorID(r, actorID))
		})
	}
}

func bearerActor(w http.ResponseWriter, r *http.Request, verifier auth.JWTVerifier) (int, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "authorization header required")
		return 0, false
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "invalid authorization header format")
		return 0, false
	}

	claims, err := verifier.VerifyToken(strings.TrimSpace(token))
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
		return 0, false
	}

	actorID, ok := claims.GetActorID()
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "token carries no actor id")
		return 0, false
	}
	return actorID, true
}

func devActor(r *http.Request, fallback int) int {
	if raw := r.Header.Get(ActorHeader); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return 0
		}
		return id
	}
	return fallback
}
