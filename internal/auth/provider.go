// Package auth holds the local session store and the credential provider
// behind it.
package auth

import "github.com/techboard/techboard/internal/model"

// Provider authenticates a credential pair. The default implementation is a
// local comparison; a server-backed provider can be swapped in here without
// touching any calling code.
type Provider interface {
	Authenticate(username, password string) (model.User, bool)
}

// LocalProvider checks against a single fixed credential pair. It stands in
// for real authentication; the server is never consulted.
type LocalProvider struct {
	username string
	password string
}

func NewLocalProvider(username, password string) *LocalProvider {
	return &LocalProvider{username: username, password: password}
}

func (p *LocalProvider) Authenticate(username, password string) (model.User, bool) {
	if username != p.username || password != p.password {
		return model.User{}, false
	}
	return model.User{Username: username, Role: model.RoleAdmin}, true
}
