package llm

import (
	"fmt"

	"anyfactor/internal/config"
	"anyfactor/internal/domain"
	"anyfactor/internal/llm/claude"
	"anyfactor/internal/llm/gemini"
	"anyfactor/internal/llm/perplexity"
	"anyfactor/internal/port"
)

// NewCompleter creates a Completer for the configured provider.
func NewCompleter(cfg *config.LLMConfig) (port.Completer, error) {
	switch cfg.Provider {
	case "perplexity":
		return perplexity.NewClient(cfg), nil
	case "claude":
		return claude.NewClient(cfg), nil
	case "gemini":
		return gemini.NewClient(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProvider, cfg.Provider)
	}
}
