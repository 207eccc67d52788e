package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors reflects any origin and allows credentials so that the auth cookies
// reach the API from a separately hosted frontend.
func Cors() Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	return cors.New(options).Handler
}
