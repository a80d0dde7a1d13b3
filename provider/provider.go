package provider

import "context"

// Provider is the base interface all providers must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from configuration. For inference
// backends the config carries opaque backend settings such as the model
// path.
type Factory[T Provider] func(cfg map[string]any) (T, error)
