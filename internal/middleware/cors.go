package middleware

import (
	"net/http"
	"strings"

	"github.com/benvon/wifi-api/internal/models"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// CORS builds the cross-origin middleware from a fixed policy. Matching and
// header handling are left entirely to rs/cors. With debug on, rs/cors' own
// trace output is written to the logger.
func CORS(policy models.CORSPolicy, logger *zap.Logger, debug bool) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   policy.Origins(),
		AllowCredentials: policy.AllowCredentials,
		AllowedMethods:   policy.Methods(),
		AllowedHeaders:   policy.Headers(),
		MaxAge:           policy.MaxAge,
	}
	if debug {
		opts.Debug = true
		opts.Logger = zap.NewStdLog(logger.Named("cors"))
	}

	logger.Info("cors_policy_applied",
		zap.String("allowed_origins", strings.Join(policy.AllowedOrigins, ",")),
		zap.Bool("allow_credentials", policy.AllowCredentials),
		zap.String("allowed_methods", strings.Join(policy.AllowedMethods, ",")),
		zap.String("allowed_headers", strings.Join(policy.AllowedHeaders, ",")),
		zap.Int("max_age", policy.MaxAge),
	)

	return cors.New(opts).Handler
}

// Options answers OPTIONS requests that rs/cors passed through (no
// Access-Control-Request-Method, so not a CORS preflight) with 204 on any path.
func Options(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
