// Package gsc connects a site to Google Search Console.
//
// A Connector runs the OAuth2 authorization-code flow and keeps the token
// fresh. A Client wraps the Search Console API for listing properties,
// inspecting URLs and querying search analytics. Console ties both to the
// stored property selection.
package gsc
