// Package crosspost renders a post as text for other publishing platforms.
//
// Long-form platforms (dev.to, Medium) receive Markdown built from the
// top-level blocks. Short-form platforms (LinkedIn, X, Bluesky) receive a
// summary and the permalink, cut to a per-platform character limit.
package crosspost
