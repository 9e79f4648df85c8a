package service

import (
	"time"

	"blunderlog/internal/core"

	"github.com/lixenwraith/auth"
)

// subject used in issued tokens. The journal is single-user.
const ownerSubject = "owner"

// Login verifies the owner passphrase and issues a session token.
func (s *Service) Login(passphrase string) (*core.AuthResponse, error) {
	if err := auth.VerifyPassword(passphrase, s.passphraseHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(SessionTTL)
	claims := map[string]any{
		"scope": "journal",
	}
	token, err := auth.GenerateHS256Token(s.jwtSecret, ownerSubject, claims, SessionTTL)
	if err != nil {
		return nil, err
	}

	return &core.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// ValidateToken verifies a session token and returns the subject with claims.
func (s *Service) ValidateToken(token string) (string, map[string]any, error) {
	return auth.ValidateHS256Token(s.jwtSecret, token)
}
