// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the HTTP chain shared by the catalog and browse APIs.

Order matters. The router installs, outermost first:

  - [RequestID] then [AccessLog], so every log line carries the correlation id.
  - [RateLimiter.Middleware], keyed by [RealIP].
  - [PanicRecovery], which answers with the standard error envelope.
  - [Authenticate] then [CORS].

[SessionID] and [RequireRole] are mounted per route group.
*/
package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/taibuivan/artmarket/internal/platform/constants"
	"github.com/taibuivan/artmarket/internal/platform/ctxutil"
	"github.com/taibuivan/artmarket/pkg/uuid"
)

// maxRequestIDLength bounds correlation ids accepted from upstream proxies.
const maxRequestIDLength = 64

// # Request Tracing

// RequestID stores a correlation id in the request context and echoes it in
// X-Request-ID. An upstream id is reused when it is a short printable token;
// anything else is replaced by a fresh UUIDv7 so it cannot pollute logs.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if !validRequestID(requestID) {
				requestID = uuid.New()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			ctx := ctxutil.WithRequestID(request.Context(), requestID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return false
		}
	}
	return true
}

// # Browse Sessions

// SessionID resolves the browse session key for the request.
//
// # Resolution Order
//  1. Verified user id from [Authenticate] ("user:<id>").
//  2. A well-formed X-Session-ID header ("anon:<id>").
//  3. A freshly minted UUIDv7, echoed back in X-Session-ID for the client to reuse.
//
// Must be registered AFTER [Authenticate].
func SessionID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			ctx = ctxutil.WithSessionID(ctx, sessionKey(writer, request))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func sessionKey(writer http.ResponseWriter, request *http.Request) string {
	if claims := ctxutil.GetAuthUser(request.Context()); claims != nil {
		return "user:" + claims.UserID
	}

	anonymousID := request.Header.Get(constants.HeaderXSessionID)
	if !uuid.Valid(anonymousID) {
		anonymousID = uuid.New()
	}
	writer.Header().Set(constants.HeaderXSessionID, anonymousID)
	return "anon:" + strings.ToLower(anonymousID)
}

// # Client Address

// RealIP returns the client address used for rate limiting and access logs.
//
// X-Real-IP wins over the first X-Forwarded-For hop. Header values that are
// not IP literals are ignored and the connection's peer address is used.
func RealIP(request *http.Request) string {
	if ip := parseIP(request.Header.Get(constants.HeaderXRealIP)); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := parseIP(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}

func parseIP(raw string) string {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil {
		return ""
	}
	return ip.String()
}
