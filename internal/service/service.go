// Package service coordinates the journal's storage, replay, and insight
// collaborators behind a transport-agnostic API.
package service

import (
	"errors"
	"time"

	"blunderlog/internal/insight"
	"blunderlog/internal/storage"
)

const SessionTTL = 7 * 24 * time.Hour

// Sentinel errors the transport layer translates into responses.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInsightUnavailable = errors.New("insight client not configured")
)

// Service owns the journal's business logic. The insight client is nil
// when no LLM endpoint is configured; everything else keeps working.
type Service struct {
	store          *storage.Store
	llm            insight.Client
	jwtSecret      []byte
	passphraseHash string
}

// New creates a service instance. llm may be nil.
func New(store *storage.Store, llm insight.Client, jwtSecret []byte, passphraseHash string) *Service {
	return &Service{
		store:          store,
		llm:            llm,
		jwtSecret:      jwtSecret,
		passphraseHash: passphraseHash,
	}
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Shutdown releases held resources.
func (s *Service) Shutdown() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
