package middleware

import (
	"context"
	"net/http"
	"strings"
)

// Identity is asserted upstream by the auth collaborator, which
// terminates the session and forwards the verified address in this
// header. The service itself never sees credentials.
const IdentityHeader = "X-User-Email"

type ctxKey int

const adminKey ctxKey = iota

// AdminOnly rejects any request whose asserted email is neither the
// configured admin address nor inside the trusted domain. The check runs
// once at the API boundary and attaches the capability to the request
// context.
func AdminOnly(adminEmail, adminDomain string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := strings.TrimSpace(r.Header.Get(IdentityHeader))
			if !isAdmin(email, adminEmail, adminDomain) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), adminKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isAdmin(email, adminEmail, adminDomain string) bool {
	if email == "" {
		return false
	}
	if adminEmail != "" && email == adminEmail {
		return true
	}
	return adminDomain != "" && strings.HasSuffix(email, adminDomain)
}

// AdminEmail returns the admin identity attached by AdminOnly, or ""
// outside a guarded route.
func AdminEmail(ctx context.Context) string {
	email, _ := ctx.Value(adminKey).(string)
	return email
}
