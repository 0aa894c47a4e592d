// Package session resolves the initial view from the launch context and
// owns the persisted credential.
package session

import (
	"context"
	"fmt"

	"github.com/byetax/byetax/internal/tax"
)

// Mode is the initial view chosen by the gate.
type Mode int

const (
	ModeLogin Mode = iota
	ModeOptimistic
	ModeShare
)

func (m Mode) String() string {
	switch m {
	case ModeOptimistic:
		return "optimistic"
	case ModeShare:
		return "share"
	default:
		return "login"
	}
}

// Resolution is the outcome of Gate.Resolve.
type Resolution struct {
	Mode       Mode
	ShareToken string
	Credential string
	// Navigation is the launch context with any one-time token stripped.
	Navigation Navigation
}

// Validator checks the credential it carries against the identity endpoint.
type Validator interface {
	Me(ctx context.Context) (*tax.Profile, error)
	Token() string
}

// Gate decides the initial view and manages the stored credential.
type Gate struct {
	store KV
}

// NewGate returns a gate backed by store.
func NewGate(store KV) *Gate {
	return &Gate{store: store}
}

// Resolve persists and strips a one-time token first, then picks share
// mode, optimistic dashboard, or login, in that order.
func (g *Gate) Resolve(nav Navigation) (Resolution, error) {
	if nav.Token != "" {
		if err := g.store.Set(CredentialKey, nav.Token); err != nil {
			return Resolution{}, fmt.Errorf("persisting token: %w", err)
		}
		nav = nav.WithoutToken()
	}

	res := Resolution{Navigation: nav}
	if nav.Share != "" {
		res.Mode = ModeShare
		res.ShareToken = nav.Share
		return res, nil
	}

	cred, err := g.Credential()
	switch {
	case err == nil:
		res.Mode = ModeOptimistic
		res.Credential = cred
	case err == ErrNoCredential:
		res.Mode = ModeLogin
	default:
		return Resolution{}, err
	}
	return res, nil
}

// Credential returns the stored credential or ErrNoCredential.
func (g *Gate) Credential() (string, error) {
	cred, err := g.store.Get(CredentialKey)
	if err != nil {
		return "", fmt.Errorf("reading credential: %w", err)
	}
	if cred == "" {
		return "", ErrNoCredential
	}
	return cred, nil
}

// Login stores a freshly issued credential.
func (g *Gate) Login(token string) error {
	if err := g.store.Set(CredentialKey, token); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	return nil
}

// Logout forgets the stored credential.
func (g *Gate) Logout() error {
	return g.store.Delete(CredentialKey)
}

// Validate asks v for the profile. A failure clears the stored credential
// only while it is still the one v carried; a newer login is left alone.
func (g *Gate) Validate(ctx context.Context, v Validator) (*tax.Profile, error) {
	profile, err := v.Me(ctx)
	if err != nil {
		if _, clearErr := g.store.DeleteIf(CredentialKey, v.Token()); clearErr != nil {
			return nil, fmt.Errorf("validating credential: %w (clearing: %v)", err, clearErr)
		}
		return nil, fmt.Errorf("validating credential: %w", err)
	}
	return profile, nil
}
