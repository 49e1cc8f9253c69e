package domain

import "context"

// Provider is the minimal surface every registered cloud provider offers.
// Catalog access is optional and detected through CatalogProvider.
type Provider interface {
	GetDisplayName() string
	CreateServer(ctx context.Context, opts CreateServerOpts) (*Server, error)
}
