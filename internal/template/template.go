package template

import (
	"fmt"

	"nathanbeddoewebdev/tspec/internal/domain"
)

// Template is a resolved choice of hardware, image and location.
type Template struct {
	// Location is nil when the template leaves placement to the provider.
	Location *domain.Location      `json:"location,omitempty"`
	Hardware domain.ServerTypeSpec `json:"hardware"`
	Image    domain.ImageSpec      `json:"image"`

	Credentials *domain.LoginCredentials `json:"credentials,omitempty"`
}

// LocationName returns the location name, or "" for the provider default.
func (t *Template) LocationName() string {
	if t.Location == nil {
		return ""
	}
	return valueOrID(t.Location.Name, t.Location.ID)
}

// CreateOpts converts the template into options for creating a server
// named name. Login credentials, if any, become cloud-init user data.
func (t *Template) CreateOpts(name string) (domain.CreateServerOpts, error) {
	opts := domain.CreateServerOpts{
		Name:       name,
		Image:      valueOrID(t.Image.Name, t.Image.ID),
		ServerType: valueOrID(t.Hardware.Name, t.Hardware.ID),
		Location:   t.LocationName(),
	}

	if t.Credentials != nil {
		userData, err := RenderUserData(*t.Credentials)
		if err != nil {
			return domain.CreateServerOpts{}, fmt.Errorf("failed to render user data: %w", err)
		}
		opts.UserData = userData
	}

	return opts, nil
}

func valueOrID(value, id string) string {
	if value != "" {
		return value
	}
	return id
}
