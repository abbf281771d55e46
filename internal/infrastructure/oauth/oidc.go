package oauth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/rafabene/mediaranker/internal/domain/entities"
)

// OIDCProvider autentica contra um emissor OpenID Connect (Google por padrão)
type OIDCProvider struct {
	name     string
	config   *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewOIDCProvider descobre o emissor e prepara o verificador de id_token
func NewOIDCProvider(ctx context.Context, name, issuer, clientID, clientSecret, redirectURL string) (*OIDCProvider, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover oidc issuer %s: %w", issuer, err)
	}

	return &OIDCProvider{
		name: name,
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (p *OIDCProvider) Name() string {
	return p.name
}

func (p *OIDCProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *OIDCProvider) Exchange(ctx context.Context, code string) (entities.IdentityClaim, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return entities.IdentityClaim{}, fmt.Errorf("failed to exchange code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return entities.IdentityClaim{}, errors.New("no id_token in token response")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return entities.IdentityClaim{}, fmt.Errorf("failed to verify id_token: %w", err)
	}

	var claims struct {
		Name     string `json:"name"`
		Nickname string `json:"preferred_username"`
		Email    string `json:"email"`
		Verified bool   `json:"email_verified"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return entities.IdentityClaim{}, fmt.Errorf("failed to parse id_token claims: %w", err)
	}

	claim := entities.IdentityClaim{
		Provider: p.name,
		UID:      idToken.Subject,
		Name:     claims.Name,
		Nickname: claims.Nickname,
	}
	if claims.Verified {
		claim.Email = claims.Email
	}
	return claim, nil
}
