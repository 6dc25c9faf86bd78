package middleware

import (
	"io"
	"net/http"
)

// LimitAndDrainRequest caps the request body at maxBodyBytes, so oversized
// history uploads fail to decode, and drains whatever the handler left unread
// so the connection can be reused. A non-positive limit disables the cap.
func LimitAndDrainRequest(maxBodyBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && maxBodyBytes > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			}
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
