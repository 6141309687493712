package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/keystead/identity-admin/pkg/slogx"
)

// DefaultAgentTypesTimeout bounds the call to the external directory.
const DefaultAgentTypesTimeout = 10 * time.Second

// AgentTypesService lists account classifications from an external
// directory service, falling back to the fixed default list whenever that
// service cannot be reached or answers garbage.
type AgentTypesService struct {
	// URL of the upstream directory endpoint. Empty means "always fall back".
	URL string

	// HTTPClient is used for the upstream call. Falls back to a client with
	// DefaultAgentTypesTimeout when nil.
	HTTPClient *http.Client
}

// ListAgentTypes never fails: any upstream problem yields the default list.
func (s *AgentTypesService) ListAgentTypes(ctx context.Context) []domain.AgentType {
	l := slogx.FromContext(ctx)

	types, err := s.fetch(ctx)
	if err != nil {
		l.Warn("agent type directory unavailable, using defaults", "error", err, "url", s.URL)
		return domain.DefaultAgentTypes()
	}
	return types
}

func (s *AgentTypesService) fetch(ctx context.Context) ([]domain.AgentType, error) {
	if s.URL == "" {
		return nil, fmt.Errorf("no directory url configured")
	}

	client := s.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultAgentTypesTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	var types []domain.AgentType
	if err := json.NewDecoder(resp.Body).Decode(&types); err != nil {
		return nil, fmt.Errorf("decode directory response: %w", err)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("directory returned no agent types")
	}
	return types, nil
}
