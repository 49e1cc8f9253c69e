package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"nathanbeddoewebdev/tspec/internal/domain"
	"nathanbeddoewebdev/tspec/internal/template"
	"nathanbeddoewebdev/tspec/internal/templatespec"
	"nathanbeddoewebdev/tspec/internal/tui/styles"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// ErrAborted is returned when a user cancels the interactive flow.
var ErrAborted = errors.New("template build aborted by user")

const (
	hardwareByType    = "type"
	hardwareByMinimum = "minimum"
	imageByName       = "image"
	imageByFamily     = "family"
)

// specChoices collects the wizard's answers. Numeric answers stay strings
// until the spec is assembled so the inputs can bind to them directly.
type specChoices struct {
	Location     string
	HardwareMode string
	ServerType   string
	MinCores     string
	MinRAM       string
	MinDisk      string
	ImageMode    string
	Image        string
	OsFamily     string
	OsVersion    string
	LoginUser    string
	Sudo         bool
}

// fields converts the answers into spec fields. Only the answers that
// belong to the chosen modes are used.
func (c specChoices) fields() (templatespec.Fields, error) {
	var f templatespec.Fields

	if loc := strings.TrimSpace(c.Location); loc != "" {
		f.LocationID = &loc
	}

	switch c.HardwareMode {
	case hardwareByType:
		if st := strings.TrimSpace(c.ServerType); st != "" {
			f.HardwareID = &st
		}
	case hardwareByMinimum:
		var err error
		if f.MinCores, err = optionalFloat("minimum cores", c.MinCores); err != nil {
			return f, err
		}
		if f.MinRAM, err = optionalInt("minimum RAM", c.MinRAM); err != nil {
			return f, err
		}
		if f.MinDisk, err = optionalFloat("minimum disk", c.MinDisk); err != nil {
			return f, err
		}
	}

	switch c.ImageMode {
	case imageByName:
		if img := strings.TrimSpace(c.Image); img != "" {
			f.ImageID = &img
		}
	case imageByFamily:
		if name := strings.TrimSpace(c.OsFamily); name != "" {
			family, err := domain.ParseOsFamily(name)
			if err != nil {
				return f, err
			}
			f.OsFamily = &family
		}
		if v := strings.TrimSpace(c.OsVersion); v != "" {
			f.OsVersionMatches = &v
		}
	}

	if user := strings.TrimSpace(c.LoginUser); user != "" {
		f.LoginUser = &user
		if c.Sudo {
			sudo := true
			f.AuthenticateSudo = &sudo
		}
	}

	return f, nil
}

// specString assembles and validates the spec, returning its canonical form.
func (c specChoices) specString() (string, error) {
	f, err := c.fields()
	if err != nil {
		return "", err
	}
	spec, err := templatespec.New(f)
	if err != nil {
		return "", err
	}
	return spec.Canonical(), nil
}

// BuildSpecForm runs an interactive wizard that builds a template spec from
// the provider's catalog and returns it in canonical form.
func BuildSpecForm(ctx context.Context, provider domain.CatalogProvider) (string, error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	var data template.Catalog
	fetchErr := spinner.New().
		Title("Fetching catalog...").
		Accessible(accessible).
		Output(os.Stderr).
		Context(ctx).
		ActionWithErr(func(ctx context.Context) error {
			var err error
			data, err = template.FetchCatalog(ctx, provider)
			return err
		}).
		Run()
	if fetchErr != nil {
		if errors.Is(fetchErr, huh.ErrUserAborted) || errors.Is(fetchErr, context.Canceled) {
			return "", ErrAborted
		}
		return "", fetchErr
	}

	if len(data.ServerTypes) == 0 {
		return "", fmt.Errorf("no server types available")
	}
	if len(data.Images) == 0 {
		return "", fmt.Errorf("no images available")
	}

	choices := specChoices{HardwareMode: hardwareByMinimum, ImageMode: imageByFamily}

	locationOpts := buildLocationOptions(data.Locations)
	familyOpts := buildFamilyOptions(data.Images)

	typeByName := make(map[string]domain.ServerTypeSpec, len(data.ServerTypes))
	for _, st := range data.ServerTypes {
		typeByName[valueOrID(st.Name, st.ID)] = st
	}

	serverTypeOptsFunc := func() []huh.Option[string] {
		return buildServerTypeOptions(filterServerTypesByLocation(data.ServerTypes, choices.Location))
	}
	imageOptsFunc := func() []huh.Option[string] {
		arch := ""
		if choices.HardwareMode == hardwareByType {
			arch = typeByName[choices.ServerType].Architecture
		}
		return buildImageOptions(filterImages(data.Images, arch))
	}

	confirm := false
	summary := huh.NewNote().
		Title("Summary").
		DescriptionFunc(func() string {
			return buildSummary(choices, data)
		}, &choices)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Location").
				Options(locationOpts...).
				Value(&choices.Location).
				Height(selectHeight(len(locationOpts), 10)),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Hardware").
				Options(
					huh.NewOption("Set minimum cores, RAM and disk", hardwareByMinimum),
					huh.NewOption("Pick a server type", hardwareByType),
				).
				Value(&choices.HardwareMode),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Server type").
				OptionsFunc(serverTypeOptsFunc, &choices.Location).
				Value(&choices.ServerType).
				Height(12).
				Validate(huh.ValidateNotEmpty()),
		).WithHideFunc(func() bool { return choices.HardwareMode != hardwareByType }),
		huh.NewGroup(
			huh.NewInput().
				Title("Minimum cores").
				Placeholder("any").
				Value(&choices.MinCores).
				Validate(validateOptional(func(s string) error { _, err := optionalFloat("minimum cores", s); return err })),
			huh.NewInput().
				Title("Minimum RAM (MB)").
				Placeholder("any").
				Value(&choices.MinRAM).
				Validate(validateOptional(func(s string) error { _, err := optionalInt("minimum RAM", s); return err })),
			huh.NewInput().
				Title("Minimum disk (GB)").
				Placeholder("any").
				Value(&choices.MinDisk).
				Validate(validateOptional(func(s string) error { _, err := optionalFloat("minimum disk", s); return err })),
		).WithHideFunc(func() bool { return choices.HardwareMode != hardwareByMinimum }),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Image").
				Options(
					huh.NewOption("Match by OS family and version", imageByFamily),
					huh.NewOption("Pick an image", imageByName),
				).
				Value(&choices.ImageMode),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Image").
				OptionsFunc(imageOptsFunc, &choices.ServerType).
				Value(&choices.Image).
				Height(12).
				Validate(huh.ValidateNotEmpty()),
		).WithHideFunc(func() bool { return choices.ImageMode != imageByName }),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("OS family").
				Options(familyOpts...).
				Value(&choices.OsFamily).
				Height(selectHeight(len(familyOpts), 10)),
			huh.NewInput().
				Title("OS version pattern").
				Description("Regular expression matched against the whole version, e.g. 24\\..*").
				Value(&choices.OsVersion),
		).WithHideFunc(func() bool { return choices.ImageMode != imageByFamily }),
		huh.NewGroup(
			huh.NewInput().
				Title("Login user").
				Description("Optional, as user or user:password").
				Value(&choices.LoginUser),
			huh.NewConfirm().
				Title("Require a password for sudo?").
				Value(&choices.Sudo),
		),
		huh.NewGroup(
			summary,
			huh.NewConfirm().
				Title("Use this template?").
				Value(&confirm),
		),
	).WithAccessible(accessible)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", err
	}
	if !confirm {
		return "", ErrAborted
	}

	return choices.specString()
}

// --- Filtering ---

// filterServerTypesByLocation returns only server types available at the given
// location. If location is empty (any), all types are returned.
func filterServerTypesByLocation(serverTypes []domain.ServerTypeSpec, location string) []domain.ServerTypeSpec {
	if location == "" {
		return serverTypes
	}

	filtered := make([]domain.ServerTypeSpec, 0, len(serverTypes))
	for _, st := range serverTypes {
		if st.AvailableIn(location) {
			filtered = append(filtered, st)
		}
	}
	return filtered
}

// filterImages prefers system images over snapshots and backups, and
// narrows to arch when any image matches it.
func filterImages(images []domain.ImageSpec, arch string) []domain.ImageSpec {
	if len(images) == 0 {
		return nil
	}

	systemImages := make([]domain.ImageSpec, 0, len(images))
	for _, img := range images {
		if strings.EqualFold(img.Type, "system") {
			systemImages = append(systemImages, img)
		}
	}
	filtered := images
	if len(systemImages) > 0 {
		filtered = systemImages
	}

	if arch == "" {
		return filtered
	}

	archFiltered := make([]domain.ImageSpec, 0, len(filtered))
	for _, img := range filtered {
		if strings.EqualFold(img.Architecture, arch) {
			archFiltered = append(archFiltered, img)
		}
	}
	if len(archFiltered) > 0 {
		return archFiltered
	}
	return filtered
}

// --- Option builders ---

func buildLocationOptions(locations []domain.Location) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(locations)+1)
	options = append(options, huh.NewOption("Any (provider default)", ""))
	for _, loc := range locations {
		options = append(options, huh.NewOption(locationLabel(loc), valueOrID(loc.Name, loc.ID)))
	}
	return options
}

func buildServerTypeOptions(serverTypes []domain.ServerTypeSpec) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(serverTypes))
	for _, st := range serverTypes {
		options = append(options, huh.NewOption(serverTypeLabel(st), valueOrID(st.Name, st.ID)))
	}
	return options
}

func buildImageOptions(images []domain.ImageSpec) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(images))
	for _, img := range images {
		// Image names repeat across architectures; the ID is unambiguous.
		options = append(options, huh.NewOption(imageLabel(img), valueOrID(img.ID, img.Name)))
	}
	return options
}

// buildFamilyOptions lists the recognized OS families present in images,
// ordered by name, after an "Any" entry.
func buildFamilyOptions(images []domain.ImageSpec) []huh.Option[string] {
	var families []domain.OsFamily
	for _, img := range images {
		f := img.Family()
		if f == domain.OsFamilyUnrecognized || slices.Contains(families, f) {
			continue
		}
		families = append(families, f)
	}
	slices.SortFunc(families, func(a, b domain.OsFamily) int {
		return strings.Compare(a.Name(), b.Name())
	})

	options := make([]huh.Option[string], 0, len(families)+1)
	options = append(options, huh.NewOption("Any", ""))
	for _, f := range families {
		options = append(options, huh.NewOption(f.Value(), f.Name()))
	}
	return options
}

// --- Summary ---

func buildSummary(c specChoices, data template.Catalog) string {
	spec, err := c.specString()
	if err != nil {
		return styles.ErrorText.Render("Invalid:") + " " + err.Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Spec: %s\n", displaySpec(spec))
	fmt.Fprintf(&b, "Resolves to: %s", previewResolution(spec, data))
	return b.String()
}

// previewResolution reports what spec resolves to against data, or why it
// does not.
func previewResolution(spec string, data template.Catalog) string {
	parsed, err := templatespec.Parse(spec)
	if err != nil {
		return err.Error()
	}

	tmpl, err := template.FromSpec(parsed).ResolveFrom(data)
	if err != nil {
		return "nothing (" + err.Error() + ")"
	}

	location := tmpl.LocationName()
	if location == "" {
		location = "provider default"
	}
	return fmt.Sprintf("%s / %s @ %s", serverTypeLabel(tmpl.Hardware), imageLabel(tmpl.Image), location)
}

func displaySpec(spec string) string {
	if spec == "" {
		return "(empty, any hardware and image)"
	}
	return spec
}

// --- Label helpers ---

func locationLabel(loc domain.Location) string {
	name := valueOrID(loc.Name, loc.ID)
	suffix := strings.TrimSpace(loc.City + ", " + loc.Country)
	if suffix == ", " || suffix == "" {
		return name
	}
	return name + " - " + suffix
}

func serverTypeLabel(st domain.ServerTypeSpec) string {
	name := valueOrID(st.Name, st.ID)
	memory := strconv.FormatFloat(st.Memory, 'f', -1, 64)
	label := fmt.Sprintf("%s - %d vCPU / %s GB / %d GB", name, st.Cores, memory, st.Disk)
	if st.PriceMonthly != "" {
		return label + " - " + st.PriceMonthly + "/mo"
	}
	if st.PriceHourly != "" {
		return label + " - " + st.PriceHourly + "/hr"
	}
	return label
}

func imageLabel(img domain.ImageSpec) string {
	name := valueOrID(img.Name, img.ID)
	label := name
	if img.Description != "" {
		label = name + " - " + img.Description
	}
	if img.Architecture != "" {
		label += " (" + img.Architecture + ")"
	}
	return label
}

func valueOrID(name string, id string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return strings.TrimSpace(id)
}

// --- Input helpers ---

func optionalFloat(what, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%s must be a non-negative number", what)
	}
	return &v, nil
}

func optionalInt(what, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%s must be a non-negative whole number", what)
	}
	n := int(v)
	return &n, nil
}

func validateOptional(check func(string) error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return check(s)
	}
}

func selectHeight(optionCount, max int) int {
	if optionCount < max {
		return optionCount
	}
	return max
}
