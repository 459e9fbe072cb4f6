// Package middleware wraps ports.TokenStore implementations with extra
// behavior, such as encrypting the OAuth token at rest.
package middleware
