package testutil

import (
	"net/http"

	"ethicsaudit/pkg/requestcontext"

	"github.com/google/uuid"
)

// WithUserID adds a user ID to the request context, the way the auth
// middleware does for authenticated requests. Invalid IDs are ignored.
func WithUserID(req *http.Request, userID string) *http.Request {
	parsed, err := uuid.Parse(userID)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithUserID(req.Context(), parsed))
}

// WithRequestID tags the request so handler logs can be correlated in tests.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
