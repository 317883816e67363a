// Package cookie sets and reads HMAC-signed HTTP cookies.
//
// A Manager is created with one or more secrets of at least 32 characters.
// Values are signed with the first secret and verified against all of them,
// so a new secret can be prepended while old cookies stay valid:
//
//	m, err := cookie.New([]string{newSecret, oldSecret}, cookie.WithSecure(true))
//	_ = m.SetSigned(w, "sid", token, cookie.WithMaxAge(3600))
//	token, err := m.GetSigned(r, "sid") // ErrInvalidSignature on tampering
//
// Defaults are Path "/", HttpOnly and SameSite=Lax.
package cookie
