package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/you-humble/workshop/internal/model"
	"github.com/you-humble/workshop/platform/logger"
)

const (
	HeaderActorID    = "X-Actor-ID"
	HeaderActorRole  = "X-Actor-Role"
	HeaderMechanicID = "X-Mechanic-ID"
	HeaderSessionID  = "X-Session-ID"
)

type actorKey struct{}

// TokenForwarder stores the caller's bearer token for outgoing backend calls.
type TokenForwarder func(ctx context.Context, token string) context.Context

// RequestLogging copies the chi request id into the logger context.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := middleware.GetReqID(ctx); id != "" {
			ctx = logger.WithRequestID(ctx, id)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authenticate builds the actor from the request headers once per request.
func Authenticate(forward TokenForwarder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := actorFromHeaders(r.Header)
			if err != nil {
				writeError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), actorKey{}, actor)
			if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && forward != nil {
				ctx = forward(ctx, token)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ActorFrom(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(model.Actor)
	return actor, ok
}

func actorFromHeaders(h http.Header) (model.Actor, error) {
	id, err := strconv.ParseInt(h.Get(HeaderActorID), 10, 64)
	if err != nil || id <= 0 {
		return model.Actor{}, model.NewValidationError(HeaderActorID, "actor id required")
	}

	actor := model.Actor{
		ID:        id,
		Role:      model.Role(strings.ToUpper(h.Get(HeaderActorRole))),
		SessionID: h.Get(HeaderSessionID),
	}
	if actor.SessionID == "" {
		actor.SessionID = "actor-" + strconv.FormatInt(id, 10)
	}

	if raw := h.Get(HeaderMechanicID); raw != "" {
		mechanicID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return model.Actor{}, model.NewValidationError(HeaderMechanicID, "mechanic id must be numeric")
		}
		actor.MechanicID = &mechanicID
	}

	if err := actor.Validate(); err != nil {
		return model.Actor{}, err
	}
	return actor, nil
}
