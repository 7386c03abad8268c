// Package store defines the persistence contracts the services depend on,
// together with the sentinel errors all implementations share. Concrete
// adapters live under internal/platform.
package store
