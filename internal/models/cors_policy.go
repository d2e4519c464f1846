package models

import "net/http"

// Wildcard matches every value in a CORS allow-list.
const Wildcard = "*"

// StandardMethods is what a wildcard AllowedMethods entry expands to.
var StandardMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
}

// CORSPolicy is the cross-origin policy applied to every response.
// It is built once at startup and never changed afterward.
type CORSPolicy struct {
	AllowedOrigins   []string `json:"allowed_origins" yaml:"allowed_origins"`
	AllowCredentials bool     `json:"allow_credentials" yaml:"allow_credentials"`
	AllowedMethods   []string `json:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers" yaml:"allowed_headers"`
	MaxAge           int      `json:"max_age" yaml:"max_age"`
}

// NewCORSPolicy copies the given lists so later changes by the caller
// do not leak into the policy.
func NewCORSPolicy(origins []string, allowCredentials bool, methods, headers []string, maxAge int) CORSPolicy {
	return CORSPolicy{
		AllowedOrigins:   cloneStrings(origins),
		AllowCredentials: allowCredentials,
		AllowedMethods:   cloneStrings(methods),
		AllowedHeaders:   cloneStrings(headers),
		MaxAge:           maxAge,
	}
}

// Methods returns the allowed methods with the wildcard expanded.
func (p CORSPolicy) Methods() []string {
	for _, m := range p.AllowedMethods {
		if m == Wildcard {
			return cloneStrings(StandardMethods)
		}
	}
	return cloneStrings(p.AllowedMethods)
}

// Headers returns a copy of the allowed headers. A wildcard entry is kept as is.
func (p CORSPolicy) Headers() []string {
	return cloneStrings(p.AllowedHeaders)
}

// Origins returns a copy of the allowed origins.
func (p CORSPolicy) Origins() []string {
	return cloneStrings(p.AllowedOrigins)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
