package tui

import (
	"strings"
	"testing"

	"nathanbeddoewebdev/tspec/internal/domain"
	"nathanbeddoewebdev/tspec/internal/template"

	"github.com/charmbracelet/huh"
	"github.com/google/go-cmp/cmp"
)

type optionPair struct {
	Key   string
	Value string
}

func testCatalog() template.Catalog {
	return template.Catalog{
		Locations: []domain.Location{
			{ID: "1", Name: "fsn1", City: "Falkenstein", Country: "DE"},
			{ID: "2", Name: "nbg1", City: "Nuremberg", Country: "DE"},
		},
		ServerTypes: []domain.ServerTypeSpec{
			{ID: "22", Name: "cx22", Cores: 2, Memory: 4, Disk: 40, Architecture: "x86", PriceMonthly: "3.79", Locations: []string{"fsn1", "nbg1"}},
			{ID: "45", Name: "cax11", Cores: 2, Memory: 4, Disk: 40, Architecture: "arm", Locations: []string{"fsn1"}},
		},
		Images: []domain.ImageSpec{
			{ID: "2", Name: "ubuntu-24.04", Description: "Ubuntu 24.04", Type: "system", OSFlavor: "ubuntu", OSVersion: "24.04", Architecture: "x86", Is64Bit: true},
			{ID: "3", Name: "ubuntu-24.04", Description: "Ubuntu 24.04", Type: "system", OSFlavor: "ubuntu", OSVersion: "24.04", Architecture: "arm", Is64Bit: true},
			{ID: "4", Name: "debian-12", Description: "Debian 12", Type: "system", OSFlavor: "debian", OSVersion: "12", Architecture: "x86", Is64Bit: true},
			{ID: "9", Name: "", Description: "my snapshot", Type: "snapshot", OSFlavor: "unknown", Architecture: "x86"},
		},
	}
}

func TestSpecChoices_SpecString(t *testing.T) {
	tests := []struct {
		name    string
		choices specChoices
		want    string
	}{
		{
			name:    "nothing chosen",
			choices: specChoices{HardwareMode: hardwareByMinimum, ImageMode: imageByFamily},
			want:    "",
		},
		{
			name: "minimums and family",
			choices: specChoices{
				Location:     "fsn1",
				HardwareMode: hardwareByMinimum,
				MinCores:     "2",
				MinRAM:       " 2048 ",
				ImageMode:    imageByFamily,
				OsFamily:     "UBUNTU",
				OsVersion:    `24\..*`,
			},
			want: `minCores=2,minRam=2048,osFamily=UBUNTU,osVersionMatches=24\..*,locationId=fsn1`,
		},
		{
			name: "explicit type and image",
			choices: specChoices{
				HardwareMode: hardwareByType,
				ServerType:   "cx22",
				MinCores:     "8", // ignored in type mode
				ImageMode:    imageByName,
				Image:        "2",
				OsFamily:     "DEBIAN", // ignored in image mode
			},
			want: "hardwareId=cx22,imageId=2",
		},
		{
			name: "login user with sudo",
			choices: specChoices{
				HardwareMode: hardwareByMinimum,
				ImageMode:    imageByFamily,
				LoginUser:    "deploy:s3cret",
				Sudo:         true,
			},
			want: "loginUser=deploy:s3cret,authenticateSudo=true",
		},
		{
			name: "sudo without user is dropped",
			choices: specChoices{
				HardwareMode: hardwareByMinimum,
				ImageMode:    imageByFamily,
				Sudo:         true,
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.choices.specString()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("specString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpecChoices_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name    string
		choices specChoices
		want    string
	}{
		{
			name:    "cores",
			choices: specChoices{HardwareMode: hardwareByMinimum, MinCores: "two"},
			want:    "minimum cores must be a non-negative number",
		},
		{
			name:    "ram fraction",
			choices: specChoices{HardwareMode: hardwareByMinimum, MinRAM: "1.5"},
			want:    "minimum RAM must be a non-negative whole number",
		},
		{
			name:    "negative disk",
			choices: specChoices{HardwareMode: hardwareByMinimum, MinDisk: "-1"},
			want:    "minimum disk must be a non-negative number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.choices.specString()
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestBuildLocationOptions_StartsWithAny(t *testing.T) {
	options := buildLocationOptions(testCatalog().Locations)

	want := []optionPair{
		{Key: "Any (provider default)", Value: ""},
		{Key: "fsn1 - Falkenstein, DE", Value: "fsn1"},
		{Key: "nbg1 - Nuremberg, DE", Value: "nbg1"},
	}
	if diff := cmp.Diff(want, optionsToPairs(options)); diff != "" {
		t.Errorf("unexpected location options (-want +got):\n%s", diff)
	}
}

func TestBuildServerTypeOptions_UsesNameAndPrice(t *testing.T) {
	options := buildServerTypeOptions(testCatalog().ServerTypes)

	want := []optionPair{
		{Key: "cx22 - 2 vCPU / 4 GB / 40 GB - 3.79/mo", Value: "cx22"},
		{Key: "cax11 - 2 vCPU / 4 GB / 40 GB", Value: "cax11"},
	}
	if diff := cmp.Diff(want, optionsToPairs(options)); diff != "" {
		t.Errorf("unexpected server type options (-want +got):\n%s", diff)
	}
}

func TestBuildImageOptions_UsesIDs(t *testing.T) {
	options := buildImageOptions(filterImages(testCatalog().Images, "arm"))

	want := []optionPair{
		{Key: "ubuntu-24.04 - Ubuntu 24.04 (arm)", Value: "3"},
	}
	if diff := cmp.Diff(want, optionsToPairs(options)); diff != "" {
		t.Errorf("unexpected image options (-want +got):\n%s", diff)
	}
}

func TestBuildFamilyOptions(t *testing.T) {
	options := buildFamilyOptions(testCatalog().Images)

	want := []optionPair{
		{Key: "Any", Value: ""},
		{Key: "debian", Value: "DEBIAN"},
		{Key: "ubuntu", Value: "UBUNTU"},
	}
	if diff := cmp.Diff(want, optionsToPairs(options)); diff != "" {
		t.Errorf("unexpected family options (-want +got):\n%s", diff)
	}
}

func TestFilterServerTypesByLocation(t *testing.T) {
	serverTypes := []domain.ServerTypeSpec{
		{Name: "cpx11", Locations: []string{"fsn1", "nbg1"}},
		{Name: "cax11", Locations: []string{"hel1"}},
		{Name: "cx21", Locations: nil},
	}

	filtered := filterServerTypesByLocation(serverTypes, "fsn1")

	var names []string
	for _, st := range filtered {
		names = append(names, st.Name)
	}
	// A type without location data is available anywhere.
	if diff := cmp.Diff([]string{"cpx11", "cx21"}, names); diff != "" {
		t.Errorf("filtered names mismatch (-want +got):\n%s", diff)
	}

	if got := filterServerTypesByLocation(serverTypes, ""); len(got) != len(serverTypes) {
		t.Errorf("expected all %d server types for empty location, got %d", len(serverTypes), len(got))
	}
}

func TestFilterImages(t *testing.T) {
	images := []domain.ImageSpec{
		{ID: "1", Name: "ubuntu-24.04", Type: "system", Architecture: "x86"},
		{ID: "2", Name: "ubuntu-24.04-arm", Type: "system", Architecture: "arm"},
		{ID: "3", Name: "snapshot-1", Type: "snapshot", Architecture: "x86"},
	}

	filtered := filterImages(images, "x86")
	if len(filtered) != 1 || filtered[0].Name != "ubuntu-24.04" {
		t.Errorf("expected 1 x86 system image, got %d", len(filtered))
	}

	filtered = filterImages(images, "riscv")
	if len(filtered) != 2 {
		t.Errorf("expected 2 system images as fallback, got %d", len(filtered))
	}

	if filtered := filterImages(nil, "x86"); filtered != nil {
		t.Errorf("expected nil for empty images, got %v", filtered)
	}
}

func TestPreviewResolution(t *testing.T) {
	data := testCatalog()

	tests := []struct {
		spec string
		want string
	}{
		{
			spec: "osFamily=UBUNTU,locationId=nbg1",
			want: "cx22 - 2 vCPU / 4 GB / 40 GB - 3.79/mo / ubuntu-24.04 - Ubuntu 24.04 (x86) @ nbg1",
		},
		{
			spec: "hardwareId=cax11",
			want: "cax11 - 2 vCPU / 4 GB / 40 GB / ubuntu-24.04 - Ubuntu 24.04 (arm) @ provider default",
		},
		{
			spec: "minCores=64",
			want: "nothing (no hardware satisfies the constraints: no matching catalog entry)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if got := previewResolution(tt.spec, data); got != tt.want {
				t.Errorf("previewResolution() =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}

func TestBuildSummary(t *testing.T) {
	summary := buildSummary(specChoices{
		HardwareMode: hardwareByMinimum,
		MinRAM:       "4096",
		ImageMode:    imageByFamily,
		OsFamily:     "DEBIAN",
	}, testCatalog())

	for _, want := range []string{
		"Spec: minRam=4096,osFamily=DEBIAN",
		"Resolves to: cx22",
		"debian-12",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("expected summary to include %q, got:\n%s", want, summary)
		}
	}

	summary = buildSummary(specChoices{HardwareMode: hardwareByMinimum, MinCores: "x"}, testCatalog())
	if !strings.HasPrefix(summary, "Invalid: ") {
		t.Errorf("expected invalid summary, got %q", summary)
	}
}

func TestSelectHeight(t *testing.T) {
	if got := selectHeight(3, 10); got != 3 {
		t.Errorf("expected selectHeight(3, 10) = 3, got %d", got)
	}
	if got := selectHeight(15, 10); got != 10 {
		t.Errorf("expected selectHeight(15, 10) = 10, got %d", got)
	}
}

func optionsToPairs(options []huh.Option[string]) []optionPair {
	pairs := make([]optionPair, 0, len(options))
	for _, option := range options {
		pairs = append(pairs, optionPair{Key: option.Key, Value: option.Value})
	}
	return pairs
}
