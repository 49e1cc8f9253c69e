package templatestore

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"nathanbeddoewebdev/tspec/internal/domain"
	"nathanbeddoewebdev/tspec/internal/templatespec"
)

func tempStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenAt(t.Context(), filepath.Join(t.TempDir(), "tspec.db"))
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSave_Insert(t *testing.T) {
	s := tempStore(t)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	got, err := s.Save(t.Context(), "web", " osFamily=UBUNTU,minRam=2048 ")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	want := &Template{
		Name:      "web",
		Spec:      "osFamily=UBUNTU,minRam=2048",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Template{}, "ID")); diff != "" {
		t.Errorf("template mismatch (-want +got):\n%s", diff)
	}
	if got.ID == 0 {
		t.Error("expected ID to be assigned")
	}
}

func TestSave_UpsertKeepsCreatedAt(t *testing.T) {
	s := tempStore(t)

	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	s.now = func() time.Time { return first }
	orig, err := s.Save(t.Context(), "web", "minCores=2")
	if err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	s.now = func() time.Time { return second }
	updated, err := s.Save(t.Context(), "web", "minCores=4")
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	if updated.ID != orig.ID {
		t.Errorf("ID changed on upsert: %d -> %d", orig.ID, updated.ID)
	}
	if updated.Spec != "minCores=4" {
		t.Errorf("Spec = %q, want %q", updated.Spec, "minCores=4")
	}
	if !updated.CreatedAt.Equal(first) {
		t.Errorf("CreatedAt = %v, want %v", updated.CreatedAt, first)
	}
	if !updated.UpdatedAt.Equal(second) {
		t.Errorf("UpdatedAt = %v, want %v", updated.UpdatedAt, second)
	}
}

func TestSave_RejectsInvalidSpec(t *testing.T) {
	s := tempStore(t)

	_, err := s.Save(t.Context(), "broken", "hardwareId=cx22,minCores=2")
	if !errors.Is(err, templatespec.ErrConflictingKeys) {
		t.Fatalf("expected ErrConflictingKeys, got %v", err)
	}

	if _, err := s.Get(t.Context(), "broken"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("invalid template was stored: %v", err)
	}
}

func TestSave_RejectsInvalidName(t *testing.T) {
	s := tempStore(t)

	for _, name := range []string{"", "Web", "has space", "-leading"} {
		if _, err := s.Save(t.Context(), name, "minCores=2"); err == nil {
			t.Errorf("expected error for name %q", name)
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	s := tempStore(t)

	_, err := s.Get(t.Context(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), `"missing"`) {
		t.Errorf("expected error to name the template, got %v", err)
	}
}

func TestList_OrderedByName(t *testing.T) {
	s := tempStore(t)

	for _, name := range []string{"web", "db", "cache"} {
		if _, err := s.Save(t.Context(), name, "osFamily=DEBIAN"); err != nil {
			t.Fatalf("Save %q failed: %v", name, err)
		}
	}

	templates, err := s.List(t.Context())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	var names []string
	for _, tmpl := range templates {
		names = append(names, tmpl.Name)
	}
	if diff := cmp.Diff([]string{"cache", "db", "web"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestList_Empty(t *testing.T) {
	s := tempStore(t)

	templates, err := s.List(t.Context())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(templates) != 0 {
		t.Errorf("expected no templates, got %d", len(templates))
	}
}

func TestDelete(t *testing.T) {
	s := tempStore(t)

	if _, err := s.Save(t.Context(), "web", "minCores=2"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Delete(t.Context(), "web"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(t.Context(), "web"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := s.Delete(t.Context(), "web"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestResolveRef(t *testing.T) {
	s := tempStore(t)
	if _, err := s.Save(t.Context(), "web", "osFamily=UBUNTU"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr error
	}{
		{name: "inline spec", arg: "minRam=1024", want: "minRam=1024"},
		{name: "empty", arg: "", want: ""},
		{name: "saved", arg: "@web", want: "osFamily=UBUNTU"},
		{name: "saved with space", arg: " @web", want: "osFamily=UBUNTU"},
		{name: "missing", arg: "@nope", wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRef(t.Context(), s, tt.arg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveRef(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}
