package client

import (
	"context"

	"github.com/menta2k/moodmeme/pkg/types"
)

// VisionClient is a vision language model backend
type VisionClient interface {
	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error
	SimpleQuery(ctx context.Context, model, prompt, imgB64 string) (string, error)
	DetectExpressions(ctx context.Context, model, prompt, imgB64 string) (*types.ExpressionReport, error)
}
