package models

// Token is the body returned by GET /connect.
//
// The value is opaque to clients: it is a random identifier whose only
// meaning is the session entry stored under "auth_<token>" in the cache.
type Token struct {
	Token string `json:"token"`
}
