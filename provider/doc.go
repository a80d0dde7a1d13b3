// Package provider defines the generic provider base used by patchkit's
// inference backends: the Provider interface, factory registration, and the
// optional lifecycle interfaces a backend can implement to hook model
// loading and teardown.
//
// The descriptor package defines the domain-specific Inferencer interface on
// top of this base.
package provider
