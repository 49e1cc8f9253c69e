package providers

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"nathanbeddoewebdev/tspec/internal/cache"
	"nathanbeddoewebdev/tspec/internal/domain"
	"nathanbeddoewebdev/tspec/internal/retry"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// ListLocations retrieves all available locations from the Hetzner Cloud API.
func (h *HetznerProvider) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return cache.Fetch(h.cache, catalogCacheKey("locations"), h.cacheTTL, func() ([]domain.Location, error) {
		hzLocations, err := callWithRetry(ctx, h.retry.Named("list locations"), func(reqCtx context.Context) ([]*hcloud.Location, error) {
			return h.client.Location.All(reqCtx)
		})
		if err != nil {
			return nil, mapHetznerError("failed to list locations", err)
		}

		locations := make([]domain.Location, 0, len(hzLocations))
		for _, loc := range hzLocations {
			locations = append(locations, toDomainLocation(loc))
		}
		return locations, nil
	})
}

// ListServerTypes retrieves all available server types from the Hetzner Cloud API.
func (h *HetznerProvider) ListServerTypes(ctx context.Context) ([]domain.ServerTypeSpec, error) {
	return cache.Fetch(h.cache, catalogCacheKey("server_types"), h.cacheTTL, func() ([]domain.ServerTypeSpec, error) {
		hzServerTypes, err := callWithRetry(ctx, h.retry.Named("list server types"), func(reqCtx context.Context) ([]*hcloud.ServerType, error) {
			return h.client.ServerType.All(reqCtx)
		})
		if err != nil {
			return nil, mapHetznerError("failed to list server types", err)
		}

		now := time.Now()
		serverTypes := make([]domain.ServerTypeSpec, 0, len(hzServerTypes))
		for _, st := range hzServerTypes {
			serverTypes = append(serverTypes, toDomainServerType(st, now))
		}
		return serverTypes, nil
	})
}

// ListImages retrieves all available images from the Hetzner Cloud API.
func (h *HetznerProvider) ListImages(ctx context.Context) ([]domain.ImageSpec, error) {
	return cache.Fetch(h.cache, catalogCacheKey("images"), h.cacheTTL, func() ([]domain.ImageSpec, error) {
		hzImages, err := callWithRetry(ctx, h.retry.Named("list images"), func(reqCtx context.Context) ([]*hcloud.Image, error) {
			return h.client.Image.AllWithOpts(reqCtx, hcloud.ImageListOpts{
				Status: []hcloud.ImageStatus{hcloud.ImageStatusAvailable},
			})
		})
		if err != nil {
			return nil, mapHetznerError("failed to list images", err)
		}

		images := make([]domain.ImageSpec, 0, len(hzImages))
		for _, img := range hzImages {
			images = append(images, toDomainImage(img))
		}
		return images, nil
	})
}

// ListSSHKeys retrieves all SSH keys from the Hetzner Cloud API. Keys are
// never cached.
func (h *HetznerProvider) ListSSHKeys(ctx context.Context) ([]domain.SSHKeySpec, error) {
	hzKeys, err := callWithRetry(ctx, h.retry.Named("list ssh keys"), func(reqCtx context.Context) ([]*hcloud.SSHKey, error) {
		return h.client.SSHKey.All(reqCtx)
	})
	if err != nil {
		return nil, mapHetznerError("failed to list SSH keys", err)
	}

	keys := make([]domain.SSHKeySpec, 0, len(hzKeys))
	for _, k := range hzKeys {
		keys = append(keys, toDomainSSHKey(k))
	}

	return keys, nil
}

// InvalidateCatalog drops the cached locations, server types and images.
func (h *HetznerProvider) InvalidateCatalog() error {
	for _, resource := range []string{"locations", "server_types", "images"} {
		if err := h.cache.Invalidate(catalogCacheKey(resource)); err != nil {
			return fmt.Errorf("failed to invalidate %s cache: %w", resource, err)
		}
	}
	return nil
}

// callWithRetry runs fn under the retry policy, giving each attempt its own
// request timeout.
func callWithRetry[T any](ctx context.Context, cfg retry.Config, fn func(context.Context) (T, error)) (T, error) {
	var result T
	err := retry.Do(ctx, cfg, isHetznerRetryable, func() error {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		var apiErr error
		result, apiErr = fn(reqCtx)
		return apiErr
	})
	return result, err
}

// --- Domain mapping helpers ---

func toDomainLocation(loc *hcloud.Location) domain.Location {
	return domain.Location{
		ID:          strconv.FormatInt(loc.ID, 10),
		Name:        loc.Name,
		Description: loc.Description,
		Country:     loc.Country,
		City:        loc.City,
	}
}

func toDomainServerType(st *hcloud.ServerType, now time.Time) domain.ServerTypeSpec {
	spec := domain.ServerTypeSpec{
		ID:           strconv.FormatInt(st.ID, 10),
		Name:         st.Name,
		Description:  st.Description,
		Cores:        st.Cores,
		Memory:       float64(st.Memory),
		Disk:         st.Disk,
		Architecture: string(st.Architecture),
		CPUType:      string(st.CPUType),
		Hypervisor:   hetznerHypervisor,
	}

	// The Locations field carries per-location deprecation info and is the
	// preferred source.
	spec.Locations = availableLocations(st.Locations, now)

	// Older API responses may omit Locations; fall back to the prices array.
	if len(spec.Locations) == 0 {
		locations := make([]string, 0, len(st.Pricings))
		for _, pricing := range st.Pricings {
			if pricing.Location != nil && pricing.Location.Name != "" {
				locations = append(locations, pricing.Location.Name)
			}
		}
		if len(locations) > 0 {
			spec.Locations = uniqueStrings(locations)
		}
	}

	// The first price entry stands in for the server type's price.
	if len(st.Pricings) > 0 {
		spec.PriceMonthly = st.Pricings[0].Monthly.Gross
		spec.PriceHourly = st.Pricings[0].Hourly.Gross
	}

	return spec
}

// availableLocations returns location names from the server type's Locations
// field, excluding any that are deprecated with an UnavailableAfter date in
// the past.
func availableLocations(stLocations []hcloud.ServerTypeLocation, now time.Time) []string {
	names := make([]string, 0, len(stLocations))
	for _, stl := range stLocations {
		if stl.Location == nil || stl.Location.Name == "" {
			continue
		}
		if stl.IsDeprecated() && now.After(stl.UnavailableAfter()) {
			continue
		}
		names = append(names, stl.Location.Name)
	}
	if len(names) == 0 {
		return nil
	}
	return uniqueStrings(names)
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	sort.Strings(result)
	return result
}

// toDomainImage converts an image. Every Hetzner architecture (x86, arm)
// is 64-bit.
func toDomainImage(img *hcloud.Image) domain.ImageSpec {
	return domain.ImageSpec{
		ID:           strconv.FormatInt(img.ID, 10),
		Name:         img.Name,
		Description:  img.Description,
		Type:         string(img.Type),
		OSFlavor:     img.OSFlavor,
		OSVersion:    img.OSVersion,
		Architecture: string(img.Architecture),
		Is64Bit:      true,
	}
}

func toDomainSSHKey(k *hcloud.SSHKey) domain.SSHKeySpec {
	return domain.SSHKeySpec{
		ID:          strconv.FormatInt(k.ID, 10),
		Name:        k.Name,
		Fingerprint: k.Fingerprint,
	}
}

func catalogCacheKey(resource string) string {
	return "catalog_hetzner_" + resource
}
