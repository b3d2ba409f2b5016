// Package ctxkeys defines the keys used to stash authenticated identity on a
// request context. Handlers read these instead of re-parsing tokens.
package ctxkeys

// Key is a typed context key
type Key string

const (
	// KeyUserID is the authenticated creator's ID (matches profiles.id)
	KeyUserID Key = "user_id"
	// KeyUsername is the authenticated creator's username
	KeyUsername Key = "username"
	// KeyEmail is the authenticated creator's email
	KeyEmail Key = "email"
	// KeyAuthType records how the request authenticated ("jwt")
	KeyAuthType Key = "auth_type"
	// KeyJWTToken carries the raw bearer token for pass-through calls
	KeyJWTToken Key = "jwt_token"
)
