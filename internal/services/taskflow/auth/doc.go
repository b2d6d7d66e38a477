// Package auth owns registration, login and bearer-token verification.
//
// Sessions are stateless: a signed token is valid for anyone presenting it
// until its expiry, and there is no server-side revocation.
package auth
