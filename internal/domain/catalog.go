package domain

import "context"

// Location represents an available deployment region/location from a provider.
type Location struct {
	ID          string `json:"id"`
	Name        string `json:"name"`        // e.g. "fsn1"
	Description string `json:"description"` // e.g. "Falkenstein DC Park 1"
	Country     string `json:"country"`     // e.g. "DE"
	City        string `json:"city"`        // e.g. "Falkenstein"
}

// ServerTypeSpec describes an available hardware profile from a provider.
type ServerTypeSpec struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`        // e.g. "cpx11"
	Description  string   `json:"description"` // e.g. "CPX 11"
	Cores        int      `json:"cores"`
	Memory       float64  `json:"memory"` // in GB
	Disk         int      `json:"disk"`   // in GB
	Architecture string   `json:"architecture"`
	CPUType      string   `json:"cpu_type,omitempty"` // e.g. "shared", "dedicated"
	Hypervisor   string   `json:"hypervisor,omitempty"`
	PriceMonthly string   `json:"price_monthly,omitempty"`
	PriceHourly  string   `json:"price_hourly,omitempty"`
	Locations    []string `json:"locations,omitempty"` // location names where available
}

// MemoryMB returns the memory size in megabytes.
func (s ServerTypeSpec) MemoryMB() int {
	return int(s.Memory * 1024)
}

// AvailableIn reports whether the server type can be deployed at the named
// location. A server type without location data is assumed available anywhere.
func (s ServerTypeSpec) AvailableIn(location string) bool {
	if len(s.Locations) == 0 {
		return true
	}
	for _, l := range s.Locations {
		if l == location {
			return true
		}
	}
	return false
}

// ImageSpec describes an available OS image from a provider.
type ImageSpec struct {
	ID           string `json:"id"`
	Name         string `json:"name"`        // e.g. "ubuntu-24.04"
	Description  string `json:"description"` // e.g. "Ubuntu 24.04"
	Type         string `json:"type"`        // e.g. "system", "snapshot", "backup"
	OSFlavor     string `json:"os_flavor"`   // e.g. "ubuntu", "debian", "fedora"
	OSVersion    string `json:"os_version,omitempty"`
	Architecture string `json:"architecture"` // e.g. "x86", "arm"
	Is64Bit      bool   `json:"is_64bit"`
}

// Family returns the OS family derived from the image's OS flavor.
func (i ImageSpec) Family() OsFamily {
	return OsFamilyFromFlavor(i.OSFlavor)
}

// SSHKeySpec describes an SSH key registered with the provider.
type SSHKeySpec struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Fingerprint string `json:"fingerprint"`
}

// CatalogProvider is implemented by providers that can enumerate the
// locations, hardware profiles and images a template is resolved against.
type CatalogProvider interface {
	ListLocations(ctx context.Context) ([]Location, error)
	ListServerTypes(ctx context.Context) ([]ServerTypeSpec, error)
	ListImages(ctx context.Context) ([]ImageSpec, error)
	ListSSHKeys(ctx context.Context) ([]SSHKeySpec, error)
}
