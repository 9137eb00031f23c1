package handlers

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleClaims is the subset of the verified ID token the login flow needs.
type GoogleClaims struct {
	Email string
	Name  string
}

// CredentialVerifier abstracts Google ID token verification for dependency
// injection and testing.
type CredentialVerifier interface {
	Verify(ctx context.Context, credential, audience string) (*GoogleClaims, error)
}

type idTokenVerifier struct{}

// NewCredentialVerifier returns the real verifier backed by Google's
// public signing keys.
func NewCredentialVerifier() CredentialVerifier {
	return idTokenVerifier{}
}

func (idTokenVerifier) Verify(ctx context.Context, credential, audience string) (*GoogleClaims, error) {
	payload, err := idtoken.Validate(ctx, credential, audience)
	if err != nil {
		return nil, err
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("credential carries no email claim")
	}
	name, _ := payload.Claims["name"].(string)

	return &GoogleClaims{Email: email, Name: name}, nil
}
