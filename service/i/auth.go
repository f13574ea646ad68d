package i

// Authenticator signs the site admin in.
type Authenticator interface {
	// SignIn checks the credentials and returns an access token.
	SignIn(username, password string) (string, error)
}
