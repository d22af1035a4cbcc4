// Package auth provides authentication for rolodex.
//
// # Opaque Bearer Tokens
//
// Every session is an opaque token: 32 random bytes, hex-encoded, carrying no
// embedded claims. The token is stored on the user row together with its
// expiry (epoch milliseconds); presenting it in the X-API-TOKEN header proves
// a recent successful login. Logout clears the token server-side, so a
// revoked token fails immediately.
//
// # Request Flow
//
// Middleware runs on every protected endpoint:
//
//  1. Extract the X-API-TOKEN header value.
//  2. Look up the user whose current token equals it.
//  3. Compare the stored expiry against the current time.
//  4. Attach the resolved user to the request context.
//
// All failures collapse to the same 401 response so that a missing header, an
// unknown token, and an expired token cannot be told apart. Downstream
// handlers retrieve the user with FromContext and pass it explicitly into
// services; identity is never re-derived past this point.
//
// # Sessions
//
// SessionService.Login verifies credentials with bcrypt (burning equivalent
// work for unknown usernames, so timing doesn't leak which half failed) and
// rotates to a brand-new token in a single atomic statement. There is one
// active session per user: each login invalidates the prior token.
package auth
