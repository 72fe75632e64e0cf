package present_test

import (
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/terrafusion/go-formval/pkg/present"
)

type stubSelector struct {
	selection *theme.Selection
	err       error
}

func (s *stubSelector) Select(_, _ string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, s.err
}

func countyManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "county",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/county",
			Files: map[string]string{
				"stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"stylesheet": "theme.dark.css",
					},
				},
			},
		},
	}
}

func TestThemeSelectionDrivesRendering(t *testing.T) {
	selector := &stubSelector{selection: &theme.Selection{
		Theme:    "county",
		Variant:  "dark",
		Manifest: countyManifest(),
	}}

	presenter := newPresenter(t, present.WithThemeSelection(selector, "county", "dark"))

	style := presenter.ThemeStyle()
	if !strings.Contains(style, "--brand: #654321;") {
		t.Fatalf("variant token not applied:\n%s", style)
	}
	if got := presenter.ThemeAssetURL("stylesheet"); got != "/assets/themes/county/theme.dark.css" {
		t.Fatalf("asset url = %q", got)
	}
	if got := presenter.ThemeAssetURL("missing"); got != "" {
		t.Fatalf("unknown asset resolved to %q", got)
	}
}

func TestThemeSelectionBaseVariant(t *testing.T) {
	selector := &stubSelector{selection: &theme.Selection{
		Theme:    "county",
		Variant:  "",
		Manifest: countyManifest(),
	}}

	presenter := newPresenter(t, present.WithThemeSelection(selector, "county", ""))

	if !strings.Contains(presenter.ThemeStyle(), "--brand: #123456;") {
		t.Fatalf("base token missing:\n%s", presenter.ThemeStyle())
	}
	if got := presenter.ThemeAssetURL("stylesheet"); got != "/assets/themes/county/theme.css" {
		t.Fatalf("asset url = %q", got)
	}
}

func TestThemeSelectionFailureSurfacesFromNew(t *testing.T) {
	selector := &stubSelector{selection: &theme.Selection{Theme: "county"}}

	if _, err := present.New(present.WithThemeSelection(selector, "county", "")); err == nil {
		t.Fatal("selection without manifest must fail construction")
	}
}

func TestNoThemeIsSilent(t *testing.T) {
	presenter := newPresenter(t)
	if presenter.ThemeStyle() != "" {
		t.Fatal("style emitted without theme")
	}
	if presenter.ThemeAssetURL("stylesheet") != "" {
		t.Fatal("asset url resolved without theme")
	}
}
