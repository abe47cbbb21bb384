package handlers

import (
	"context"
	"net/http"
)

type contextKey string

const userIDKey contextKey = "user_id"

// ContextWithUserID stores the authenticated user id on the context.
// The session middleware calls this for gated routes.
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated user id for the request.
func UserID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(userIDKey).(int64)
	return id, ok
}
