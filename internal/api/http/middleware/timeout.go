package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds every request context. Store calls downstream inherit the
// deadline through ctx.
type Timeout struct {
	duration time.Duration
}

// NewTimeout creates a new Timeout middleware.
func NewTimeout(duration time.Duration) *Timeout {
	if duration <= 0 {
		duration = 15 * time.Second
	}
	return &Timeout{duration: duration}
}

// Handle runs the next handler with a deadline-bounded request context.
func (t *Timeout) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), t.duration)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
