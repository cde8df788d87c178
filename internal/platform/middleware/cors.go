// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/taibuivan/artmarket/internal/platform/constants"
)

// AppConfig is the slice of configuration [CORS] reads.
type AppConfig interface {
	IsDevelopment() bool
	OriginSuffix() string
}

// CORS admits storefront origins. Development admits any origin; otherwise
// the origin host must equal the configured suffix or be a subdomain of it,
// so "artmarket.app" trusts "www.artmarket.app" but not "fakeartmarket.app".
//
// The browse API keys anonymous sessions on X-Session-ID, so that header is
// both accepted and exposed.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Add("Vary", constants.HeaderOrigin)

			if cfg.IsDevelopment() || trustedOrigin(origin, cfg.OriginSuffix()) {
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization, X-Request-ID, X-Session-ID")
				header.Set("Access-Control-Expose-Headers", "X-Request-ID, X-Session-ID, Retry-After")
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Access-Control-Max-Age", "300")
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func trustedOrigin(origin, suffix string) bool {
	suffix = strings.TrimPrefix(strings.ToLower(suffix), ".")
	if suffix == "" {
		return false
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	return host == suffix || strings.HasSuffix(host, "."+suffix)
}
