package middleware

import (
	"net/http"
	"strings"
)

// MethodOverride permite que formulários HTML enviem PATCH, PUT e DELETE
// via POST com o campo _method. Precisa envolver o engine, pois o Gin
// resolve a rota antes de executar middlewares.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && isForm(r) {
			switch method := strings.ToUpper(r.PostFormValue("_method")); method {
			case http.MethodPatch, http.MethodPut, http.MethodDelete:
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}
