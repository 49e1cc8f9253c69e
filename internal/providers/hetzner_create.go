package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"nathanbeddoewebdev/tspec/internal/domain"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// CreateServer creates a new server on Hetzner Cloud.
// It maps domain.CreateServerOpts to the hcloud SDK, resolving SSH key
// names to their IDs as the API requires. The create call itself is not
// retried.
func (h *HetznerProvider) CreateServer(ctx context.Context, opts domain.CreateServerOpts) (*domain.Server, error) {
	hcloudOpts := hcloud.ServerCreateOpts{
		Name:             opts.Name,
		ServerType:       serverTypeRef(opts.ServerType),
		Image:            imageRef(opts.Image),
		UserData:         opts.UserData,
		Labels:           opts.Labels,
		StartAfterCreate: opts.StartAfterCreate,
	}

	if opts.Location != "" {
		hcloudOpts.Location = &hcloud.Location{Name: opts.Location}
	}

	for _, key := range opts.SSHKeyIdentifiers {
		sshKey, err := callWithRetry(ctx, h.retry.Named("get ssh key"), func(reqCtx context.Context) (*hcloud.SSHKey, error) {
			k, _, err := h.client.SSHKey.Get(reqCtx, key)
			return k, err
		})
		if err != nil {
			return nil, mapHetznerError(fmt.Sprintf("failed to resolve SSH key %q", key), err)
		}
		if sshKey == nil {
			return nil, fmt.Errorf("SSH key %q: %w", key, domain.ErrNotFound)
		}
		hcloudOpts.SSHKeys = append(hcloudOpts.SSHKeys, sshKey)
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	result, _, err := h.client.Server.Create(reqCtx, hcloudOpts)
	if err != nil {
		return nil, mapHetznerError("failed to create server", err)
	}

	server := toDomainServer(result.Server)
	slog.Info("hetzner: server created", "id", server.ID, "name", server.Name, "server_type", opts.ServerType, "image", opts.Image)

	// Hetzner generates a root password when no SSH keys are given.
	if result.RootPassword != "" {
		server.Metadata["root_password"] = result.RootPassword
	}

	return &server, nil
}

// imageRef refers to an image by numeric ID when possible. Snapshots and
// backups often have no name.
func imageRef(nameOrID string) *hcloud.Image {
	if id, err := strconv.ParseInt(nameOrID, 10, 64); err == nil {
		return &hcloud.Image{ID: id}
	}
	return &hcloud.Image{Name: nameOrID}
}

func serverTypeRef(nameOrID string) *hcloud.ServerType {
	if id, err := strconv.ParseInt(nameOrID, 10, 64); err == nil {
		return &hcloud.ServerType{ID: id}
	}
	return &hcloud.ServerType{Name: nameOrID}
}
