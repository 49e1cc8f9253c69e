// Package templates is the service layer the CLI uses to turn a template
// argument into a parsed spec and a resolved template.
package templates

import (
	"context"
	"fmt"
	"strings"

	"nathanbeddoewebdev/tspec/internal/domain"
	"nathanbeddoewebdev/tspec/internal/template"
	"nathanbeddoewebdev/tspec/internal/templatespec"
	"nathanbeddoewebdev/tspec/internal/templatestore"
)

// Opener opens the saved-template store.
type Opener func(ctx context.Context) (templatestore.Store, error)

// Service loads specs from inline strings, saved "@name" references or the
// configured default. The store is opened only when a reference needs it.
type Service struct {
	defaultSpec string
	open        Opener
	store       templatestore.Store
}

// NewService creates a service falling back to defaultSpec when no
// argument is given.
func NewService(defaultSpec string, open Opener) *Service {
	return &Service{defaultSpec: defaultSpec, open: open}
}

// Close releases the store if it was opened.
func (s *Service) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// Load parses arg, expanding a saved-template reference and falling back
// to the default spec for an empty argument.
func (s *Service) Load(ctx context.Context, arg string) (*templatespec.Spec, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		arg = s.defaultSpec
	}

	raw := arg
	if templatestore.IsRef(arg) {
		store, err := s.storeFor(ctx)
		if err != nil {
			return nil, err
		}
		if raw, err = templatestore.ResolveRef(ctx, store, arg); err != nil {
			return nil, err
		}
	}

	spec, err := templatespec.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid template spec: %w", err)
	}
	return spec, nil
}

// Resolve loads arg and resolves it against catalog.
func (s *Service) Resolve(ctx context.Context, catalog domain.CatalogProvider, arg string) (*template.Template, *templatespec.Spec, error) {
	spec, err := s.Load(ctx, arg)
	if err != nil {
		return nil, nil, err
	}

	tmpl, err := template.FromSpec(spec).Resolve(ctx, catalog)
	if err != nil {
		return nil, spec, err
	}
	return tmpl, spec, nil
}

func (s *Service) storeFor(ctx context.Context) (templatestore.Store, error) {
	if s.store != nil {
		return s.store, nil
	}
	if s.open == nil {
		return nil, fmt.Errorf("saved templates are not available")
	}
	store, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open template store: %w", err)
	}
	s.store = store
	return store, nil
}
