package template

import (
	"fmt"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// PatternError reports a constraint pattern that is not a valid regular
// expression.
type PatternError struct {
	Field   string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid %s pattern %q: %v", e.Field, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// patterns holds the compiled constraint patterns. A nil entry matches
// anything.
type patterns struct {
	hypervisor    *regexp.Regexp
	imageName     *regexp.Regexp
	osVersion     *regexp.Regexp
	osArch        *regexp.Regexp
	osDescription *regexp.Regexp
}

func (c Constraints) compile() (patterns, error) {
	var p patterns
	specs := []struct {
		field   string
		pattern string
		dst     **regexp.Regexp
	}{
		{"hypervisorMatches", c.HypervisorPattern, &p.hypervisor},
		{"imageNameMatches", c.ImageNamePattern, &p.imageName},
		{"osVersionMatches", c.OsVersionPattern, &p.osVersion},
		{"osArchMatches", c.OsArchPattern, &p.osArch},
		{"osDescriptionMatches", c.OsDescriptionPattern, &p.osDescription},
	}
	for _, s := range specs {
		re, err := compileFullMatch(s.pattern)
		if err != nil {
			return patterns{}, &PatternError{Field: s.field, Pattern: s.pattern, Err: err}
		}
		*s.dst = re
	}
	return p, nil
}

// compileFullMatch compiles pattern so that it must match an entire string.
func compileFullMatch(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, err
	}
	return regexp.Compile(`^(?:` + pattern + `)$`)
}

func matches(re *regexp.Regexp, s string) bool {
	return re == nil || re.MatchString(s)
}

// compareVersions orders OS version strings. Versions that parse as dotted
// numbers compare numerically and rank above those that don't.
func compareVersions(a, b string) int {
	va, errA := goversion.NewVersion(a)
	vb, errB := goversion.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		return va.Compare(vb)
	case errA == nil:
		return 1
	case errB == nil:
		return -1
	}
	return strings.Compare(a, b)
}
