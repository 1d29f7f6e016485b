package jwtinfra

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"github.com/docnotify-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the JWT payload fields asserted by the upstream identity
// service. team_id scopes document visibility.
type Claims struct {
	UserID string `json:"user_id"`
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Provider verifies RS256 JWTs against the identity service's public key.
// This service never signs tokens.
type Provider struct {
	publicKey *rsa.PublicKey
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	pubBytes, err := os.ReadFile(cfg.JWTPublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return &Provider{publicKey: pubKey}, nil
}

// NewProviderFromKey builds a provider directly from a parsed key. Used by
// tests that mint their own key pairs.
func NewProviderFromKey(pubKey *rsa.PublicKey) *Provider {
	return &Provider{publicKey: pubKey}
}

func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.publicKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
