package templatespec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"nathanbeddoewebdev/tspec/internal/domain"
)

// exclusiveGroup forbids combining selector with any of excludes.
type exclusiveGroup struct {
	selector Key
	excludes []Key
}

// Selecting hardware or an image by id forecloses selecting it by
// constraint.
var exclusiveGroups = []exclusiveGroup{
	{
		selector: KeyHardwareID,
		excludes: []Key{KeyMinCores, KeyMinRAM, KeyMinDisk, KeyHypervisorMatches},
	},
	{
		selector: KeyImageID,
		excludes: []Key{
			KeyImageNameMatches, KeyOsFamily, KeyOsVersionMatches,
			KeyOs64Bit, KeyOsArchMatches, KeyOsDescriptionMatches,
		},
	},
}

// Validate checks the cross-key invariants: the exclusivity groups and the
// loginUser requirement of authenticateSudo. Parse and New call it; it is
// exported so callers holding a Spec from elsewhere can re-check it.
func (s *Spec) Validate() error {
	for _, g := range exclusiveGroups {
		if !s.Has(g.selector) {
			continue
		}
		for _, other := range g.excludes {
			if !s.Has(other) {
				continue
			}
			first, second := g.selector, other
			if s.position(other) < s.position(g.selector) {
				first, second = other, g.selector
			}
			v, _ := s.Value(first)
			return newParseError(ErrConflictingKeys, second.String(), "",
				fmt.Sprintf("%s was already set to %s, cannot also set %s", first, formatValue(v), second))
		}
	}

	if s.Has(KeyAuthenticateSudo) {
		if !s.Has(KeyLoginUser) || s.position(KeyLoginUser) > s.position(KeyAuthenticateSudo) {
			return newParseError(ErrMissingDependency, KeyAuthenticateSudo.String(), "",
				"login user must be set to use authenticateSudo")
		}
	}

	return nil
}

// position returns where k was written, or the key order position when the
// spec was not parsed from a string.
func (s *Spec) position(k Key) int {
	if s.order == nil {
		return int(k)
	}
	for i, o := range s.order {
		if o == k {
			return i
		}
	}
	return math.MaxInt
}

// New builds a Spec from explicit field values, applying the same value and
// cross-key checks as Parse. The resulting Spec's ParsableString is its
// canonical form.
func New(f Fields) (*Spec, error) {
	s := &Spec{}
	for _, k := range AllKeys() {
		v, ok := anyOfFields(&f, k)
		if !ok {
			continue
		}
		if err := checkRepresentable(k, v); err != nil {
			return nil, err
		}
		s.set(k, v)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.raw = s.Canonical()
	return s, nil
}

// checkRepresentable rejects values that Parse could never have produced,
// so that Canonical always round-trips.
func checkRepresentable(k Key, v any) error {
	switch v := v.(type) {
	case string:
		if v == "" {
			return newParseError(ErrOmittedValue, k.String(), "", fmt.Sprintf("value of key %s omitted", k))
		}
		if strings.ContainsAny(v, ",=") || strings.TrimSpace(v) != v {
			return newParseError(ErrInvalidValue, k.String(), v,
				fmt.Sprintf("key %s value set to %q, must not contain ',' or '=' or surrounding whitespace", k, v))
		}
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return newParseError(ErrInvalidValue, k.String(), formatValue(v),
				fmt.Sprintf("key %s value set to %s, must be double", k, formatValue(v)))
		}
	case int:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return newParseError(ErrInvalidValue, k.String(), strconv.Itoa(v),
				fmt.Sprintf("key %s value set to %d, must be integer", k, v))
		}
	case domain.OsFamily:
		if !v.Valid() {
			return newParseError(ErrInvalidValue, k.String(), fmt.Sprint(int(v)),
				fmt.Sprintf("key %s value set to %d, must be a name in enum OsFamily", k, int(v)))
		}
	}
	return nil
}

func anyOfFields(f *Fields, k Key) (any, bool) {
	s := Spec{fields: *f}
	return s.Value(k)
}
