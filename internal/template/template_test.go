package template

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nathanbeddoewebdev/tspec/internal/domain"
	"nathanbeddoewebdev/tspec/internal/templatespec"
)

func TestTemplate_CreateOpts(t *testing.T) {
	tmpl := &Template{
		Location: &domain.Location{ID: "1", Name: "fsn1"},
		Hardware: domain.ServerTypeSpec{ID: "11", Name: "cpx11"},
		Image:    domain.ImageSpec{ID: "2", Name: "ubuntu-24.04"},
	}

	got, err := tmpl.CreateOpts("web-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := domain.CreateServerOpts{
		Name:       "web-1",
		Image:      "ubuntu-24.04",
		ServerType: "cpx11",
		Location:   "fsn1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("create opts mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplate_CreateOpts_FallsBackToIDs(t *testing.T) {
	tmpl := &Template{
		Hardware: domain.ServerTypeSpec{ID: "11"},
		Image:    domain.ImageSpec{ID: "98765"},
	}

	got, err := tmpl.CreateOpts("snap")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Image != "98765" || got.ServerType != "11" || got.Location != "" {
		t.Errorf("unexpected opts: %+v", got)
	}
}

func TestTemplate_CreateOpts_Credentials(t *testing.T) {
	tmpl := &Template{
		Hardware:    domain.ServerTypeSpec{Name: "cpx11"},
		Image:       domain.ImageSpec{Name: "debian-12"},
		Credentials: &domain.LoginCredentials{User: "deploy", Password: "s3cret", AuthenticateSudo: true},
	}

	got, err := tmpl.CreateOpts("db-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(got.UserData, "useradd") {
		t.Errorf("expected user data to create the login user, got:\n%s", got.UserData)
	}

	tmpl.Credentials.User = "Not Valid"
	if _, err := tmpl.CreateOpts("db-1"); err == nil {
		t.Error("expected error for invalid login user")
	}
}

func TestRenderUserData(t *testing.T) {
	tests := []struct {
		name        string
		creds       domain.LoginCredentials
		contains    []string
		notContains []string
	}{
		{
			name:        "root with password",
			creds:       domain.LoginCredentials{User: "root", Password: "hunter2"},
			contains:    []string{"LOGIN_USER=root\n", `printf '%s:%s\n' "$LOGIN_USER" hunter2 | chpasswd`},
			notContains: []string{"useradd", "sudoers"},
		},
		{
			name:        "user without sudo password",
			creds:       domain.LoginCredentials{User: "deploy"},
			contains:    []string{"useradd", "NOPASSWD: ALL", "authorized_keys"},
			notContains: []string{"chpasswd"},
		},
		{
			name:        "user with sudo password",
			creds:       domain.LoginCredentials{User: "deploy", Password: "pa ss'word", AuthenticateSudo: true},
			contains:    []string{"$LOGIN_USER ALL=(ALL) ALL", `'pa ss'"'"'word'`},
			notContains: []string{"NOPASSWD"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderUserData(tt.creds)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.HasPrefix(got, "#!/bin/bash\n") {
				t.Errorf("expected a bash script, got:\n%s", got)
			}
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("expected user data to contain %q, got:\n%s", s, got)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(got, s) {
					t.Errorf("expected user data not to contain %q, got:\n%s", s, got)
				}
			}
		})
	}
}

func TestRenderUserData_InvalidUser(t *testing.T) {
	for _, user := range []string{"", "Root", "bad user", "x;rm -rf /", strings.Repeat("a", 40)} {
		if _, err := RenderUserData(domain.LoginCredentials{User: user}); err == nil {
			t.Errorf("RenderUserData(%q): expected error", user)
		}
	}
}

func TestRenderUserData_PasswordLineBreaks(t *testing.T) {
	for _, pw := range []string{"a\nb", "a\rb", "hunter2\r\n"} {
		if _, err := RenderUserData(domain.LoginCredentials{User: "root", Password: pw}); err == nil {
			t.Errorf("RenderUserData(password %q): expected error", pw)
		}
	}
}

func TestTemplate_CreateOpts_PasswordFromSpec(t *testing.T) {
	spec := templatespec.MustParse("loginUser=root:first\nsecond")
	creds, ok := spec.LoginCredentials()
	if !ok {
		t.Fatal("expected login credentials")
	}
	tmpl := &Template{
		Hardware:    domain.ServerTypeSpec{Name: "cpx11"},
		Image:       domain.ImageSpec{Name: "debian-12"},
		Credentials: &creds,
	}

	if _, err := tmpl.CreateOpts("db-1"); err == nil || !strings.Contains(err.Error(), "line breaks") {
		t.Errorf("expected line break error, got %v", err)
	}
}
