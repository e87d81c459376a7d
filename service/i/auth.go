package i

import "github.com/beka-birhanu/vinom-pcg/identity"

// Authenticator registers operators and signs them in.
type Authenticator interface {
	Register(name, secret string) error
	SignIn(name, secret string) (*identity.Operator, string, error)
}
