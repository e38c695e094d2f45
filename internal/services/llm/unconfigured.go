package llm

import (
	"context"
	"fmt"

	"YieldAdvisor/internal/domain/service"
)

// Unconfigured stands in when no API key is set.
type Unconfigured struct {
	Provider string
}

func (u Unconfigured) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: no api key configured for %s", service.ErrLLMAuth, u.Provider)
}
