package domain

import (
	"fmt"
	"strings"
)

// OsFamily is the normalized operating system family of an image.
type OsFamily int

const (
	OsFamilyUnrecognized OsFamily = iota
	OsFamilyAIX
	OsFamilyAlma
	OsFamilyAmznLinux
	OsFamilyArch
	OsFamilyCentOS
	OsFamilyCloudLinux
	OsFamilyCoreOS
	OsFamilyDarwin
	OsFamilyDebian
	OsFamilyESX
	OsFamilyFedora
	OsFamilyFreeBSD
	OsFamilyGentoo
	OsFamilyHPUX
	OsFamilyLinux
	OsFamilyMandriva
	OsFamilyNetBSD
	OsFamilyOEL
	OsFamilyOpenBSD
	OsFamilyRHEL
	OsFamilyRocky
	OsFamilyScientific
	OsFamilySlackware
	OsFamilySolaris
	OsFamilySUSE
	OsFamilyTurboLinux
	OsFamilyUbuntu
	OsFamilyUnix
	OsFamilyWindows
)

var osFamilyNames = [...]string{
	OsFamilyUnrecognized: "UNRECOGNIZED",
	OsFamilyAIX:          "AIX",
	OsFamilyAlma:         "ALMA",
	OsFamilyAmznLinux:    "AMZN_LINUX",
	OsFamilyArch:         "ARCH",
	OsFamilyCentOS:       "CENTOS",
	OsFamilyCloudLinux:   "CLOUD_LINUX",
	OsFamilyCoreOS:       "COREOS",
	OsFamilyDarwin:       "DARWIN",
	OsFamilyDebian:       "DEBIAN",
	OsFamilyESX:          "ESX",
	OsFamilyFedora:       "FEDORA",
	OsFamilyFreeBSD:      "FREEBSD",
	OsFamilyGentoo:       "GENTOO",
	OsFamilyHPUX:         "HPUX",
	OsFamilyLinux:        "LINUX",
	OsFamilyMandriva:     "MANDRIVA",
	OsFamilyNetBSD:       "NETBSD",
	OsFamilyOEL:          "OEL",
	OsFamilyOpenBSD:      "OPENBSD",
	OsFamilyRHEL:         "RHEL",
	OsFamilyRocky:        "ROCKY",
	OsFamilyScientific:   "SCIENTIFIC",
	OsFamilySlackware:    "SLACKWARE",
	OsFamilySolaris:      "SOLARIS",
	OsFamilySUSE:         "SUSE",
	OsFamilyTurboLinux:   "TURBOLINUX",
	OsFamilyUbuntu:       "UBUNTU",
	OsFamilyUnix:         "UNIX",
	OsFamilyWindows:      "WINDOWS",
}

// osFamilyValues holds the lower camel form of each name ("AMZN_LINUX" ->
// "amznLinux").
var osFamilyValues = func() [len(osFamilyNames)]string {
	var out [len(osFamilyNames)]string
	for i, name := range osFamilyNames {
		out[i] = lowerCamel(name)
	}
	return out
}()

// flavorFamilies maps provider OS flavor strings to families.
var flavorFamilies = map[string]OsFamily{
	"ubuntu":    OsFamilyUbuntu,
	"debian":    OsFamilyDebian,
	"centos":    OsFamilyCentOS,
	"fedora":    OsFamilyFedora,
	"rocky":     OsFamilyRocky,
	"alma":      OsFamilyAlma,
	"almalinux": OsFamilyAlma,
	"rhel":      OsFamilyRHEL,
	"redhat":    OsFamilyRHEL,
	"opensuse":  OsFamilySUSE,
	"suse":      OsFamilySUSE,
	"sles":      OsFamilySUSE,
	"arch":      OsFamilyArch,
	"freebsd":   OsFamilyFreeBSD,
	"openbsd":   OsFamilyOpenBSD,
	"netbsd":    OsFamilyNetBSD,
	"gentoo":    OsFamilyGentoo,
	"coreos":    OsFamilyCoreOS,
	"amzn":      OsFamilyAmznLinux,
	"oracle":    OsFamilyOEL,
	"windows":   OsFamilyWindows,
}

// AllOsFamilies returns every family except OsFamilyUnrecognized, in
// declaration order.
func AllOsFamilies() []OsFamily {
	out := make([]OsFamily, 0, len(osFamilyNames)-1)
	for i := range osFamilyNames {
		if OsFamily(i) == OsFamilyUnrecognized {
			continue
		}
		out = append(out, OsFamily(i))
	}
	return out
}

// Valid reports whether f is one of the declared families.
func (f OsFamily) Valid() bool {
	return f >= 0 && int(f) < len(osFamilyNames)
}

// Name returns the enum name, e.g. "UBUNTU".
func (f OsFamily) Name() string {
	if !f.Valid() {
		return osFamilyNames[OsFamilyUnrecognized]
	}
	return osFamilyNames[f]
}

// Value returns the lower camel form of the name, e.g. "amznLinux".
func (f OsFamily) Value() string {
	if !f.Valid() {
		return osFamilyValues[OsFamilyUnrecognized]
	}
	return osFamilyValues[f]
}

func (f OsFamily) String() string {
	return f.Value()
}

// MarshalText encodes the family by name.
func (f OsFamily) MarshalText() ([]byte, error) {
	return []byte(f.Name()), nil
}

// UnmarshalText decodes a family name, rejecting unknown names.
func (f *OsFamily) UnmarshalText(text []byte) error {
	family, err := ParseOsFamily(string(text))
	if err != nil {
		return err
	}
	*f = family
	return nil
}

// ParseOsFamily looks up a family by its exact enum name.
func ParseOsFamily(name string) (OsFamily, error) {
	for i, n := range osFamilyNames {
		if n == name {
			return OsFamily(i), nil
		}
	}
	return OsFamilyUnrecognized, fmt.Errorf("unknown os family %q", name)
}

// OsFamilyFromValue looks up a family by its value or name, ignoring case.
// Unknown input yields OsFamilyUnrecognized.
func OsFamilyFromValue(value string) OsFamily {
	value = strings.TrimSpace(value)
	for i := range osFamilyNames {
		if strings.EqualFold(osFamilyValues[i], value) || strings.EqualFold(osFamilyNames[i], value) {
			return OsFamily(i)
		}
	}
	return OsFamilyUnrecognized
}

// OsFamilyFromFlavor maps a provider's OS flavor string (Hetzner's
// "os_flavor", for example) to a family.
func OsFamilyFromFlavor(flavor string) OsFamily {
	flavor = strings.ToLower(strings.TrimSpace(flavor))
	if family, ok := flavorFamilies[flavor]; ok {
		return family
	}
	return OsFamilyFromValue(flavor)
}

func lowerCamel(upperUnderscore string) string {
	parts := strings.Split(strings.ToLower(upperUnderscore), "_")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i > 0 {
			b.WriteString(strings.ToUpper(p[:1]))
			b.WriteString(p[1:])
			continue
		}
		b.WriteString(p)
	}
	return b.String()
}
