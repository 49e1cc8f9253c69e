package templatespec

import (
	"fmt"
	"strconv"
	"strings"

	"nathanbeddoewebdev/tspec/internal/domain"
)

// Fields holds one optional value per key. A nil pointer means the key is
// not set. It is the input to New and the JSON form of a Spec.
type Fields struct {
	HardwareID           *string          `json:"hardwareId,omitempty"`
	MinCores             *float64         `json:"minCores,omitempty"`
	MinRAM               *int             `json:"minRam,omitempty"`
	MinDisk              *float64         `json:"minDisk,omitempty"`
	HypervisorMatches    *string          `json:"hypervisorMatches,omitempty"`
	ImageID              *string          `json:"imageId,omitempty"`
	ImageNameMatches     *string          `json:"imageNameMatches,omitempty"`
	OsFamily             *domain.OsFamily `json:"osFamily,omitempty"`
	OsVersionMatches     *string          `json:"osVersionMatches,omitempty"`
	Os64Bit              *bool            `json:"os64Bit,omitempty"`
	OsArchMatches        *string          `json:"osArchMatches,omitempty"`
	OsDescriptionMatches *string          `json:"osDescriptionMatches,omitempty"`
	LoginUser            *string          `json:"loginUser,omitempty"`
	AuthenticateSudo     *bool            `json:"authenticateSudo,omitempty"`
	LocationID           *string          `json:"locationId,omitempty"`
}

// Spec is a parsed, validated template specification. The zero value is
// an empty specification. A Spec is never modified after construction.
type Spec struct {
	raw    string
	fields Fields

	// order records the keys in the order they were written. It is nil for
	// specs built from Fields.
	order []Key
}

// HardwareID returns the hardwareId value, if set.
func (s *Spec) HardwareID() (string, bool) { return deref(s.fields.HardwareID) }

// MinCores returns the minCores value, if set.
func (s *Spec) MinCores() (float64, bool) { return deref(s.fields.MinCores) }

// MinRAM returns the minRam value in megabytes, if set.
func (s *Spec) MinRAM() (int, bool) { return deref(s.fields.MinRAM) }

// MinDisk returns the minDisk value in gigabytes, if set.
func (s *Spec) MinDisk() (float64, bool) { return deref(s.fields.MinDisk) }

func (s *Spec) HypervisorMatches() (string, bool) { return deref(s.fields.HypervisorMatches) }

func (s *Spec) ImageID() (string, bool) { return deref(s.fields.ImageID) }

func (s *Spec) ImageNameMatches() (string, bool) { return deref(s.fields.ImageNameMatches) }

func (s *Spec) OsFamily() (domain.OsFamily, bool) { return deref(s.fields.OsFamily) }

func (s *Spec) OsVersionMatches() (string, bool) { return deref(s.fields.OsVersionMatches) }

func (s *Spec) Os64Bit() (bool, bool) { return deref(s.fields.Os64Bit) }

func (s *Spec) OsArchMatches() (string, bool) { return deref(s.fields.OsArchMatches) }

func (s *Spec) OsDescriptionMatches() (string, bool) { return deref(s.fields.OsDescriptionMatches) }

// LoginUser returns the raw loginUser value, including any ":password" suffix.
func (s *Spec) LoginUser() (string, bool) { return deref(s.fields.LoginUser) }

func (s *Spec) AuthenticateSudo() (bool, bool) { return deref(s.fields.AuthenticateSudo) }

func (s *Spec) LocationID() (string, bool) { return deref(s.fields.LocationID) }

// LoginCredentials builds credentials from loginUser and authenticateSudo.
// The password, if any, follows the first colon of loginUser.
func (s *Spec) LoginCredentials() (domain.LoginCredentials, bool) {
	loginUser, ok := s.LoginUser()
	if !ok {
		return domain.LoginCredentials{}, false
	}

	var creds domain.LoginCredentials
	if user, password, found := strings.Cut(loginUser, ":"); found {
		creds.User = user
		creds.Password = password
	} else {
		creds.User = loginUser
	}
	if sudo, ok := s.AuthenticateSudo(); ok {
		creds.AuthenticateSudo = sudo
	}
	return creds, true
}

// Fields returns a copy of the spec's values.
func (s *Spec) Fields() Fields {
	return Fields{
		HardwareID:           clone(s.fields.HardwareID),
		MinCores:             clone(s.fields.MinCores),
		MinRAM:               clone(s.fields.MinRAM),
		MinDisk:              clone(s.fields.MinDisk),
		HypervisorMatches:    clone(s.fields.HypervisorMatches),
		ImageID:              clone(s.fields.ImageID),
		ImageNameMatches:     clone(s.fields.ImageNameMatches),
		OsFamily:             clone(s.fields.OsFamily),
		OsVersionMatches:     clone(s.fields.OsVersionMatches),
		Os64Bit:              clone(s.fields.Os64Bit),
		OsArchMatches:        clone(s.fields.OsArchMatches),
		OsDescriptionMatches: clone(s.fields.OsDescriptionMatches),
		LoginUser:            clone(s.fields.LoginUser),
		AuthenticateSudo:     clone(s.fields.AuthenticateSudo),
		LocationID:           clone(s.fields.LocationID),
	}
}

// Value returns the typed value stored for k: string, float64, int, bool or
// domain.OsFamily depending on k.Kind().
func (s *Spec) Value(k Key) (any, bool) {
	switch k {
	case KeyHardwareID:
		return anyOf(s.fields.HardwareID)
	case KeyMinCores:
		return anyOf(s.fields.MinCores)
	case KeyMinRAM:
		return anyOf(s.fields.MinRAM)
	case KeyMinDisk:
		return anyOf(s.fields.MinDisk)
	case KeyHypervisorMatches:
		return anyOf(s.fields.HypervisorMatches)
	case KeyImageID:
		return anyOf(s.fields.ImageID)
	case KeyImageNameMatches:
		return anyOf(s.fields.ImageNameMatches)
	case KeyOsFamily:
		return anyOf(s.fields.OsFamily)
	case KeyOsVersionMatches:
		return anyOf(s.fields.OsVersionMatches)
	case KeyOs64Bit:
		return anyOf(s.fields.Os64Bit)
	case KeyOsArchMatches:
		return anyOf(s.fields.OsArchMatches)
	case KeyOsDescriptionMatches:
		return anyOf(s.fields.OsDescriptionMatches)
	case KeyLoginUser:
		return anyOf(s.fields.LoginUser)
	case KeyAuthenticateSudo:
		return anyOf(s.fields.AuthenticateSudo)
	case KeyLocationID:
		return anyOf(s.fields.LocationID)
	}
	return nil, false
}

// Has reports whether k is set.
func (s *Spec) Has(k Key) bool {
	_, ok := s.Value(k)
	return ok
}

// Keys returns the set keys in application order.
func (s *Spec) Keys() []Key {
	var keys []Key
	for _, k := range AllKeys() {
		if s.Has(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// IsEmpty reports whether no key is set.
func (s *Spec) IsEmpty() bool {
	return len(s.Keys()) == 0
}

// set stores a value produced by parseValue. The value's dynamic type must
// match k.Kind().
func (s *Spec) set(k Key, v any) {
	switch k {
	case KeyHardwareID:
		s.fields.HardwareID = ptr(v.(string))
	case KeyMinCores:
		s.fields.MinCores = ptr(v.(float64))
	case KeyMinRAM:
		s.fields.MinRAM = ptr(v.(int))
	case KeyMinDisk:
		s.fields.MinDisk = ptr(v.(float64))
	case KeyHypervisorMatches:
		s.fields.HypervisorMatches = ptr(v.(string))
	case KeyImageID:
		s.fields.ImageID = ptr(v.(string))
	case KeyImageNameMatches:
		s.fields.ImageNameMatches = ptr(v.(string))
	case KeyOsFamily:
		s.fields.OsFamily = ptr(v.(domain.OsFamily))
	case KeyOsVersionMatches:
		s.fields.OsVersionMatches = ptr(v.(string))
	case KeyOs64Bit:
		s.fields.Os64Bit = ptr(v.(bool))
	case KeyOsArchMatches:
		s.fields.OsArchMatches = ptr(v.(string))
	case KeyOsDescriptionMatches:
		s.fields.OsDescriptionMatches = ptr(v.(string))
	case KeyLoginUser:
		s.fields.LoginUser = ptr(v.(string))
	case KeyAuthenticateSudo:
		s.fields.AuthenticateSudo = ptr(v.(bool))
	case KeyLocationID:
		s.fields.LocationID = ptr(v.(string))
	default:
		panic(fmt.Sprintf("templatespec: unhandled key %d", int(k)))
	}
}

// Equal reports whether both specs set the same keys to the same values.
// The original specification strings are not compared.
func (s *Spec) Equal(other *Spec) bool {
	if s == nil || other == nil {
		return s == other
	}
	for _, k := range AllKeys() {
		a, aok := s.Value(k)
		b, bok := other.Value(k)
		if aok != bok || a != b {
			return false
		}
	}
	return true
}

// ParsableString returns the specification exactly as it was parsed.
// Specs built from Fields return their canonical form.
func (s *Spec) ParsableString() string {
	return s.raw
}

// Canonical re-serializes the set keys in application order. Parsing the
// result yields a Spec equal to s.
func (s *Spec) Canonical() string {
	keys := s.Keys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := s.Value(k)
		parts = append(parts, k.String()+"="+formatValue(v))
	}
	return strings.Join(parts, ",")
}

// Redacted is Canonical with the loginUser password, if any, masked.
func (s *Spec) Redacted() string {
	keys := s.Keys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := s.Value(k)
		value := formatValue(v)
		if k == KeyLoginUser {
			if user, _, ok := strings.Cut(value, ":"); ok {
				value = user + ":****"
			}
		}
		parts = append(parts, k.String()+"="+value)
	}
	return strings.Join(parts, ",")
}

func (s *Spec) String() string {
	return "TemplateBuilderSpec{" + s.raw + "}"
}

// formatValue renders a stored value the way the grammar accepts it.
func formatValue(v any) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case domain.OsFamily:
		return v.Name()
	case string:
		return v
	}
	return fmt.Sprint(v)
}

func ptr[T any](v T) *T {
	return &v
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func anyOf[T any](p *T) (any, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}
