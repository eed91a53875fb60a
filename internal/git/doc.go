// Package git clones remote module catalogs into an ephemeral workspace.
//
// Clone failures are mapped to typed errors (AuthError, NotFoundError,
// UnsupportedProtocolError) so callers can classify them without string parsing.
package git
