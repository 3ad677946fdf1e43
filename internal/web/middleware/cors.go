package middleware

import (
	"net/http"
	"os"
	"strings"
)

// The kiosk normally loads its frontend from the portal itself, so most
// deployments never issue a cross-origin request. During frontend development
// the SPA runs on its own dev server and calls the API cross-origin; those
// origins are listed in WEB_ALLOWED_ORIGINS (comma-separated). Loopback
// origins are accepted unconditionally since the portal binds on the kiosk
// machine anyway.

// configuredOrigins reads WEB_ALLOWED_ORIGINS into a lookup set.
func configuredOrigins() map[string]struct{} {
	set := make(map[string]struct{})
	for o := range strings.SplitSeq(os.Getenv("WEB_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			set[o] = struct{}{}
		}
	}
	return set
}

// loopbackOrigin reports whether the origin points at the local machine,
// any port.
func loopbackOrigin(origin string) bool {
	for _, scheme := range []string{"http://", "https://"} {
		rest, ok := strings.CutPrefix(origin, scheme)
		if !ok {
			continue
		}
		host, _, _ := strings.Cut(rest, ":")
		if host == "localhost" || host == "127.0.0.1" {
			return true
		}
	}
	return false
}

// CORS returns middleware answering cross-origin requests from the frontend
// dev server or a separately hosted SPA. Sessions ride on cookies, so
// credentialed requests must be allowed for every accepted origin; the
// wildcard origin is therefore never used.
func CORS() func(http.Handler) http.Handler {
	allowed := configuredOrigins()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			if origin != "" {
				_, ok := allowed[origin]
				if ok || loopbackOrigin(origin) {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")
				w.Header().Set("Access-Control-Max-Age", "86400")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders returns middleware hardening the responses the portal
// serves to the kiosk browser. The landing page carries an inline stylesheet,
// hence the style-src relaxation.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Security-Policy",
				"default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			next.ServeHTTP(w, r)
		})
	}
}
