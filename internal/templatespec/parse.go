package templatespec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"nathanbeddoewebdev/tspec/internal/domain"
)

// Parse converts a specification string into a validated Spec.
// The empty string is a valid specification with no keys set.
func Parse(specification string) (*Spec, error) {
	s := &Spec{raw: specification}
	if specification == "" {
		return s, nil
	}

	for _, pair := range strings.Split(specification, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			return nil, newParseError(ErrBlankPair, "", "", "blank key-value pair")
		}

		tokens := strings.Split(pair, "=")
		if len(tokens) > 2 {
			return nil, newParseError(ErrMultipleEquals, strings.TrimSpace(tokens[0]), "",
				fmt.Sprintf("key-value pair %s with more than one equals sign", pair))
		}

		name := strings.TrimSpace(tokens[0])
		if name == "" {
			return nil, newParseError(ErrBlankPair, "", "", fmt.Sprintf("blank key in key-value pair %s", pair))
		}

		key, ok := LookupKey(name)
		if !ok {
			return nil, newParseError(ErrUnknownKey, name, "", fmt.Sprintf("unknown key %s", name))
		}

		var raw string
		if len(tokens) == 2 {
			raw = strings.TrimSpace(tokens[1])
		}

		value, err := parseValue(key, raw)
		if err != nil {
			return nil, err
		}

		if existing, ok := s.Value(key); ok {
			return nil, newParseError(ErrDuplicateKey, name, raw,
				fmt.Sprintf("%s was already set to %s", key, formatValue(existing)))
		}

		s.set(key, value)
		s.order = append(s.order, key)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustParse is like Parse but panics if the specification is invalid.
func MustParse(specification string) *Spec {
	s, err := Parse(specification)
	if err != nil {
		panic(`templatespec: Parse(` + strconv.Quote(specification) + `): ` + err.Error())
	}
	return s
}

// parseValue converts raw into the Go type of k.Kind().
func parseValue(k Key, raw string) (any, error) {
	if raw == "" {
		return nil, newParseError(ErrOmittedValue, k.String(), "", fmt.Sprintf("value of key %s omitted", k))
	}

	invalid := func() error {
		return newParseError(ErrInvalidValue, k.String(), raw,
			fmt.Sprintf("key %s value set to %s, must be %s", k, raw, kindNoun(k.Kind())))
	}

	switch k.Kind() {
	case KindDouble:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, invalid()
		}
		return f, nil
	case KindInteger:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, invalid()
		}
		return int(n), nil
	case KindBoolean:
		switch {
		case strings.EqualFold(raw, "true"):
			return true, nil
		case strings.EqualFold(raw, "false"):
			return false, nil
		}
		return nil, invalid()
	case KindOsFamily:
		family, err := domain.ParseOsFamily(raw)
		if err != nil {
			return nil, invalid()
		}
		return family, nil
	default:
		return raw, nil
	}
}

func kindNoun(k Kind) string {
	if k == KindOsFamily {
		return "a name in enum OsFamily"
	}
	return k.String()
}
