// Package template turns template constraints into a concrete choice of
// hardware, image and location from a provider catalog.
package template

import (
	"nathanbeddoewebdev/tspec/internal/domain"
	"nathanbeddoewebdev/tspec/internal/templatespec"
)

// Constraints is the set of requirements a Builder has accumulated. Zero
// values mean "no requirement".
type Constraints struct {
	HardwareID        string
	MinCores          float64
	MinRAM            int // megabytes
	MinDisk           float64
	HypervisorPattern string

	ImageID              string
	ImageNamePattern     string
	OsFamily             *domain.OsFamily
	OsVersionPattern     string
	Os64Bit              *bool
	OsArchPattern        string
	OsDescriptionPattern string

	LocationID string
}

// Builder collects constraints and resolves them against a catalog.
// It satisfies templatespec.Builder.
type Builder struct {
	c       Constraints
	options Options
}

var _ templatespec.Builder = (*Builder)(nil)

// NewBuilder returns a Builder with no constraints.
func NewBuilder() *Builder {
	return &Builder{}
}

// FromSpec returns a Builder configured from spec.
func FromSpec(spec *templatespec.Spec) *Builder {
	b := NewBuilder()
	spec.CopyTo(b, &b.options)
	return b
}

// Constraints returns a copy of the accumulated constraints.
func (b *Builder) Constraints() Constraints {
	c := b.c
	if c.OsFamily != nil {
		f := *c.OsFamily
		c.OsFamily = &f
	}
	if c.Os64Bit != nil {
		v := *c.Os64Bit
		c.Os64Bit = &v
	}
	return c
}

// Options returns the template options collected so far.
func (b *Builder) Options() Options {
	return b.options
}

func (b *Builder) HardwareID(id string)             { b.c.HardwareID = id }
func (b *Builder) MinCores(cores float64)           { b.c.MinCores = cores }
func (b *Builder) MinRAM(megabytes int)             { b.c.MinRAM = megabytes }
func (b *Builder) MinDisk(gigabytes float64)        { b.c.MinDisk = gigabytes }
func (b *Builder) HypervisorMatches(pattern string) { b.c.HypervisorPattern = pattern }
func (b *Builder) ImageID(id string)                { b.c.ImageID = id }
func (b *Builder) ImageNameMatches(pattern string)  { b.c.ImageNamePattern = pattern }
func (b *Builder) OsFamily(family domain.OsFamily)  { b.c.OsFamily = &family }
func (b *Builder) OsVersionMatches(pattern string)  { b.c.OsVersionPattern = pattern }
func (b *Builder) Os64Bit(is64Bit bool)             { b.c.Os64Bit = &is64Bit }
func (b *Builder) OsArchMatches(pattern string)     { b.c.OsArchPattern = pattern }
func (b *Builder) LocationID(id string)             { b.c.LocationID = id }

func (b *Builder) OsDescriptionMatches(pattern string) {
	b.c.OsDescriptionPattern = pattern
}

// Options carries settings that apply to servers created from a template
// rather than to the choice of hardware or image.
type Options struct {
	Credentials *domain.LoginCredentials
}

var _ templatespec.CredentialsOverrider = (*Options)(nil)

// OverrideLoginCredentials replaces the login credentials.
func (o *Options) OverrideLoginCredentials(creds domain.LoginCredentials) {
	o.Credentials = &creds
}
