package mcp

import (
	"context"

	"github.com/custodia-labs/graphscope/internal/core/domain"
)

// mockFetch is a mock implementation of driving.FetchOrchestrator.
type mockFetch struct {
	result *domain.FetchResult
	err    error
	params []domain.FetchParams
}

func (m *mockFetch) Fetch(_ context.Context, params domain.FetchParams) (*domain.FetchResult, error) {
	m.params = append(m.params, params)
	return m.result, m.err
}

func (m *mockFetch) Run(_ context.Context, _ domain.FetchParams) domain.FetchOutcome {
	return domain.FetchOutcome{Kind: domain.OutcomeSuccess}
}

func sampleResult() *domain.FetchResult {
	return &domain.FetchResult{
		Profile: map[string]any{"id": "42", "name": "Ada"},
		Picture: map[string]any{"data": map[string]any{"url": "https://cdn.example.com/p.jpg"}},
		Permissions: map[string]any{"data": []any{
			map[string]any{"permission": "public_profile", "status": "granted"},
			map[string]any{"permission": "email", "status": "declined"},
		}},
		RequestedFields: []string{"id", "name"},
	}
}
