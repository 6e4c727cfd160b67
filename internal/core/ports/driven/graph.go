package driven

import (
	"context"

	"github.com/custodia-labs/graphscope/internal/core/domain"
)

// GraphAPI reads the authenticated user's data from the provider.
// Failures are returned as *domain.APIError.
type GraphAPI interface {
	// Me fetches /me with the comma-joined field list.
	Me(ctx context.Context, token, fields string) (domain.ProviderResponse, error)

	// Picture fetches /me/picture metadata (never the image redirect).
	Picture(ctx context.Context, token string, pictureType domain.PictureType) (domain.ProviderResponse, error)

	// Permissions fetches /me/permissions.
	Permissions(ctx context.Context, token string) (domain.ProviderResponse, error)
}
