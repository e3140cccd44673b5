package middleware

import (
	"log"
	"net"
	"net/http"
	"strings"
	"time"
)

// SecurityHeaders sets the standard response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// RequestLogger logs the request line with the caller's identity. It
// must be installed after the auth middleware: claims live on the
// derived request the auth layer passes down, so logging from outside
// the auth chain would always see an anonymous request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		userID := "-"
		if c := GetClaims(r); c != nil {
			userID = c.UserID
		}
		log.Printf("[HTTP] %s %s user=%s ip=%s dur=%s",
			r.Method, r.URL.Path, userID, clientIP(r), time.Since(start).Round(time.Millisecond))
	})
}

// clientIP extracts the caller address, preferring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
