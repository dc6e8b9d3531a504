package middleware

import "net/http"

// MethodOverride returns middleware that lets HTML forms issue PUT and
// DELETE requests via a _method query parameter on POST
func MethodOverride() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				switch r.URL.Query().Get("_method") {
				case http.MethodPut:
					r.Method = http.MethodPut
				case http.MethodDelete:
					r.Method = http.MethodDelete
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
