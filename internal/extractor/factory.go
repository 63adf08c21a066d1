package extractor

import (
	"fmt"

	"deedflow/internal/config"
	"deedflow/internal/port"
	"deedflow/internal/schema"
)

// ProviderFactory is a function that creates a FieldExtractor from a provider config.
type ProviderFactory func(cfg *config.ExtractorProviderConfig, reg *schema.Registry) (port.FieldExtractor, error)

// registry of extractor provider factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an extractor provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewExtractor creates a FieldExtractor from a provider config using the registered factory.
func NewExtractor(cfg *config.ExtractorProviderConfig, reg *schema.Registry) (port.FieldExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown extractor provider: %s", cfg.Provider)
	}
	return factory(cfg, reg)
}
