package provider

import "context"

// Initializable is optionally implemented by providers that need setup
// before handling requests (e.g., load a frozen model, warm a session).
type Initializable interface {
	Init(ctx context.Context) error
}

// Closeable is optionally implemented by providers that hold resources
// requiring explicit cleanup (e.g., an inference session or device handle).
type Closeable interface {
	Close(ctx context.Context) error
}

// Init calls Init on p if it implements Initializable.
func Init(ctx context.Context, p Provider) error {
	if i, ok := p.(Initializable); ok {
		return i.Init(ctx)
	}
	return nil
}

// Close calls Close on p if it implements Closeable.
func Close(ctx context.Context, p Provider) error {
	if c, ok := p.(Closeable); ok {
		return c.Close(ctx)
	}
	return nil
}
