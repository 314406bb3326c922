// Package middleware: caller identity extraction.
//
// This file provides a lightweight identity middleware that reads the caller's
// numeric user ID from the X-User-ID request header and stores it in the Gin
// context for handlers and access logs. It performs no authentication: the
// header is trusted as-is and is intended for deployments where an upstream
// gateway has already authenticated the caller and injects the header.
//
// Handlers that require an identity should call UserIDFrom and reject the
// request when no valid ID is present.
package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// userIDKey is the Gin context key under which the caller's ID is stored.
	userIDKey = "userID"
	// userIDHeader carries the caller's numeric user ID.
	userIDHeader = "X-User-ID"
)

// Identity extracts the numeric X-User-ID header into the request context.
//
// Behavior:
//   - A missing header is not an error; the request proceeds anonymously.
//   - A malformed (non-numeric or non-positive) header is ignored; endpoint
//     handlers that require identity respond 401 via UserIDFrom.
//   - The value is stored as a string under the "userID" context key so the
//     access logger picks it up without type assertions.
//
// Place this after RequestID()/Logger() so rejections carry correlation IDs.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(userIDHeader))
		if raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				c.Set(userIDKey, strconv.FormatInt(id, 10))
			}
		}
		c.Next()
	}
}

// UserIDFrom returns the caller's user ID previously stored by Identity().
//
// The boolean result reports whether a valid identity is present. Handlers
// should treat false as an unauthenticated request.
func UserIDFrom(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
