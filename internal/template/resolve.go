package template

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"nathanbeddoewebdev/tspec/internal/domain"
)

// Catalog is a snapshot of the catalog lists a template resolves against.
type Catalog struct {
	Locations   []domain.Location
	ServerTypes []domain.ServerTypeSpec
	Images      []domain.ImageSpec
}

// Resolve selects the cheapest hardware, the newest matching image and the
// requested location from catalog. It returns an error wrapping
// domain.ErrNoMatch when no combination satisfies the constraints, and a
// *PatternError when a pattern does not compile.
func (b *Builder) Resolve(ctx context.Context, catalog domain.CatalogProvider) (*Template, error) {
	// Fail on bad patterns before touching the network.
	if _, err := b.Constraints().compile(); err != nil {
		return nil, err
	}

	data, err := FetchCatalog(ctx, catalog)
	if err != nil {
		return nil, err
	}
	slog.Debug("template: catalog fetched",
		"locations", len(data.Locations),
		"server_types", len(data.ServerTypes),
		"images", len(data.Images))

	return b.ResolveFrom(data)
}

// ResolveFrom resolves against an already fetched catalog snapshot.
func (b *Builder) ResolveFrom(data Catalog) (*Template, error) {
	c := b.Constraints()

	p, err := c.compile()
	if err != nil {
		return nil, err
	}

	var location *domain.Location
	if c.LocationID != "" {
		loc, ok := findLocation(data.Locations, c.LocationID)
		if !ok {
			return nil, fmt.Errorf("location %q: %w", c.LocationID, domain.ErrNoMatch)
		}
		location = &loc
	}

	hardware, err := selectHardware(c, p, data.ServerTypes, location)
	if err != nil {
		return nil, err
	}

	images, err := selectImages(c, p, data.Images)
	if err != nil {
		return nil, err
	}

	for _, hw := range hardware {
		for _, img := range images {
			if !architectureFits(hw, img) {
				continue
			}
			t := &Template{
				Location: location,
				Hardware: hw,
				Image:    img,
			}
			if creds := b.options.Credentials; creds != nil {
				cp := *creds
				t.Credentials = &cp
			}
			slog.Debug("template: resolved", "hardware", hw.Name, "image", img.Name, "location", t.LocationName())
			return t, nil
		}
	}

	return nil, fmt.Errorf("no image fits the architecture of any matching hardware: %w", domain.ErrNoMatch)
}

// FetchCatalog fetches locations, server types and images concurrently.
func FetchCatalog(ctx context.Context, provider domain.CatalogProvider) (Catalog, error) {
	var data Catalog
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		data.Locations, err = provider.ListLocations(gctx)
		if err != nil {
			return fmt.Errorf("failed to list locations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		data.ServerTypes, err = provider.ListServerTypes(gctx)
		if err != nil {
			return fmt.Errorf("failed to list server types: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		data.Images, err = provider.ListImages(gctx)
		if err != nil {
			return fmt.Errorf("failed to list images: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Catalog{}, err
	}
	return data, nil
}

func findLocation(locations []domain.Location, id string) (domain.Location, bool) {
	for _, loc := range locations {
		if loc.ID == id || strings.EqualFold(loc.Name, id) {
			return loc, true
		}
	}
	return domain.Location{}, false
}

// selectHardware returns the server types satisfying c, cheapest first.
func selectHardware(c Constraints, p patterns, serverTypes []domain.ServerTypeSpec, location *domain.Location) ([]domain.ServerTypeSpec, error) {
	var out []domain.ServerTypeSpec
	for _, st := range serverTypes {
		if location != nil && !st.AvailableIn(location.Name) {
			continue
		}
		if c.HardwareID != "" {
			if st.ID == c.HardwareID || strings.EqualFold(st.Name, c.HardwareID) {
				out = append(out, st)
			}
			continue
		}
		if float64(st.Cores) < c.MinCores ||
			st.MemoryMB() < c.MinRAM ||
			float64(st.Disk) < c.MinDisk ||
			!matches(p.hypervisor, st.Hypervisor) {
			continue
		}
		out = append(out, st)
	}

	if len(out) == 0 {
		if c.HardwareID != "" {
			return nil, fmt.Errorf("hardware %q: %w", c.HardwareID, domain.ErrNoMatch)
		}
		return nil, fmt.Errorf("no hardware satisfies the constraints: %w", domain.ErrNoMatch)
	}

	slices.SortStableFunc(out, func(a, b domain.ServerTypeSpec) int {
		return cmp.Or(
			cmp.Compare(a.Cores, b.Cores),
			cmp.Compare(a.Memory, b.Memory),
			cmp.Compare(a.Disk, b.Disk),
			strings.Compare(a.Name, b.Name),
		)
	})
	return out, nil
}

// selectImages returns the images satisfying c, newest OS version first.
func selectImages(c Constraints, p patterns, images []domain.ImageSpec) ([]domain.ImageSpec, error) {
	var out []domain.ImageSpec
	for _, img := range images {
		if c.ImageID != "" {
			if img.ID == c.ImageID || strings.EqualFold(img.Name, c.ImageID) {
				out = append(out, img)
			}
			continue
		}
		if c.OsFamily != nil && img.Family() != *c.OsFamily {
			continue
		}
		if c.Os64Bit != nil && img.Is64Bit != *c.Os64Bit {
			continue
		}
		if !matches(p.imageName, img.Name) ||
			!matches(p.osVersion, img.OSVersion) ||
			!matches(p.osArch, img.Architecture) ||
			!matches(p.osDescription, img.Description) {
			continue
		}
		out = append(out, img)
	}

	if len(out) == 0 {
		if c.ImageID != "" {
			return nil, fmt.Errorf("image %q: %w", c.ImageID, domain.ErrNoMatch)
		}
		return nil, fmt.Errorf("no image satisfies the constraints: %w", domain.ErrNoMatch)
	}

	slices.SortStableFunc(out, func(a, b domain.ImageSpec) int {
		return cmp.Or(
			compareVersions(b.OSVersion, a.OSVersion),
			strings.Compare(a.Name, b.Name),
		)
	})
	return out, nil
}

// architectureFits reports whether img can boot on hw. Missing
// architecture data on either side is treated as compatible.
func architectureFits(hw domain.ServerTypeSpec, img domain.ImageSpec) bool {
	if hw.Architecture == "" || img.Architecture == "" {
		return true
	}
	return strings.EqualFold(hw.Architecture, img.Architecture)
}
