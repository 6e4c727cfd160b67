package driving

import (
	"context"

	"github.com/custodia-labs/graphscope/internal/core/domain"
)

// FetchOrchestrator validates fetch inputs and runs the three API calls.
type FetchOrchestrator interface {
	// Fetch validates params and returns the joined result.
	// A /me payload without an id is reported through FetchResult.NoResults,
	// not as an error.
	Fetch(ctx context.Context, params domain.FetchParams) (*domain.FetchResult, error)

	// Run performs Fetch and maps its outcome to presentation calls.
	// It never returns an error; failures are described by the outcome.
	Run(ctx context.Context, params domain.FetchParams) domain.FetchOutcome
}
