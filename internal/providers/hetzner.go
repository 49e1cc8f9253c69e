package providers

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"nathanbeddoewebdev/tspec/internal/cache"
	"nathanbeddoewebdev/tspec/internal/domain"
	"nathanbeddoewebdev/tspec/internal/retry"
	"nathanbeddoewebdev/tspec/internal/services/auth"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

const (
	// requestTimeout bounds a single API call; retries get a fresh budget.
	requestTimeout = 30 * time.Second

	// defaultCatalogCacheTTL is how long locations, server types and images
	// are served from the local cache.
	defaultCatalogCacheTTL = 24 * time.Hour

	// hetznerHypervisor is reported for every server type. Hetzner Cloud
	// runs all instances on KVM and the API does not expose it.
	hetznerHypervisor = "kvm"
)

// HetznerProvider implements domain.Provider and domain.CatalogProvider
// using the Hetzner Cloud API.
type HetznerProvider struct {
	client   *hcloud.Client
	cache    *cache.Cache
	retry    retry.Config
	cacheTTL time.Duration
}

var (
	_ domain.Provider        = (*HetznerProvider)(nil)
	_ domain.CatalogProvider = (*HetznerProvider)(nil)
)

// NewHetznerProvider creates a HetznerProvider with the given hcloud client
// options. Default options (application name) are applied first; callers can
// override them. A nil cache disables catalog caching.
func NewHetznerProvider(c *cache.Cache, opts ...hcloud.ClientOption) *HetznerProvider {
	defaults := []hcloud.ClientOption{
		hcloud.WithApplication("tspec", "0.1.0"),
	}
	allOpts := append(defaults, opts...)
	return &HetznerProvider{
		client:   hcloud.NewClient(allOpts...),
		cache:    c,
		retry:    retry.DefaultConfig(),
		cacheTTL: defaultCatalogCacheTTL,
	}
}

// RegisterHetzner registers the Hetzner provider factory with the global registry.
func RegisterHetzner() {
	Register("hetzner", func(store auth.Store) (domain.Provider, error) {
		token, err := store.GetToken("hetzner")
		if err != nil {
			return nil, fmt.Errorf("hetzner auth: %w", err)
		}

		return NewHetznerProvider(cache.NewDefault(), hcloud.WithToken(token)), nil
	})
}

func (h *HetznerProvider) GetDisplayName() string {
	return "Hetzner"
}

// isHetznerRetryable extends retry.IsRetryable with the API error codes
// Hetzner documents as transient.
func isHetznerRetryable(err error) bool {
	if retry.IsRetryable(err) {
		return true
	}
	return hcloud.IsError(err,
		hcloud.ErrorCodeRateLimitExceeded,
		hcloud.ErrorCodeTimeout,
		hcloud.ErrorCodeServiceError,
		hcloud.ErrorCodeLocked,
	)
}

// mapHetznerError wraps err with the domain sentinel for its API error
// code, so callers can classify failures without importing hcloud.
func mapHetznerError(op string, err error) error {
	var sentinel error
	switch {
	case hcloud.IsError(err, hcloud.ErrorCodeUnauthorized, hcloud.ErrorCodeForbidden):
		sentinel = domain.ErrUnauthorized
	case hcloud.IsError(err, hcloud.ErrorCodeRateLimitExceeded):
		sentinel = domain.ErrRateLimited
	case hcloud.IsError(err, hcloud.ErrorCodeConflict, hcloud.ErrorCodeUniquenessError):
		sentinel = domain.ErrConflict
	case hcloud.IsError(err, hcloud.ErrorCodeNotFound):
		sentinel = domain.ErrNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}

	slog.Debug("hetzner: api error", "op", op, "error", err)
	return fmt.Errorf("%s: %w", op, sentinel)
}

// toDomainServer converts an hcloud.Server to a domain.Server.
func toDomainServer(s *hcloud.Server) domain.Server {
	server := domain.Server{
		ID:        strconv.FormatInt(s.ID, 10),
		Name:      s.Name,
		Status:    string(s.Status),
		CreatedAt: s.Created,
		Provider:  "hetzner",
		Metadata:  make(map[string]interface{}),
	}

	if !s.PublicNet.IPv4.IsUnspecified() {
		server.PublicIPv4 = s.PublicNet.IPv4.IP.String()
	}

	if !s.PublicNet.IPv6.IsUnspecified() {
		server.PublicIPv6 = s.PublicNet.IPv6.IP.String()
	}

	if len(s.PrivateNet) > 0 && s.PrivateNet[0].IP != nil {
		server.PrivateIPv4 = s.PrivateNet[0].IP.String()
	}

	if s.ServerType != nil {
		server.ServerType = s.ServerType.Name
		server.Metadata["architecture"] = string(s.ServerType.Architecture)
	}

	if s.Image != nil {
		server.Image = s.Image.Name
	}

	if s.Location != nil {
		server.Region = s.Location.Name
	} else if s.Datacenter != nil && s.Datacenter.Location != nil {
		server.Region = s.Datacenter.Location.Name
	}

	server.Metadata["hetzner_id"] = s.ID

	return server
}
