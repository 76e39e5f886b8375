package gateway

import (
	"fmt"

	"sanyascan/internal/config"
	"sanyascan/internal/port"
)

// ProviderFactory is a function that creates a ModelGateway from a gateway config.
type ProviderFactory func(cfg *config.GatewayConfig) (port.ModelGateway, error)

// registry of gateway provider factories, populated explicitly via
// RegisterProvider from the composition root. The provider is a closed set
// selected by configuration, never by sniffing payload shapes at runtime.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a gateway provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewGateway creates a ModelGateway from a gateway config using the registered factory.
func NewGateway(cfg *config.GatewayConfig) (port.ModelGateway, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown gateway provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
