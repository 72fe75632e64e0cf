package present

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// resolveThemeConfig turns a selector's resolution into the renderer-facing
// configuration: manifest tokens overlaid with the variant's, CSS custom
// properties derived from tokens, template partials, and an asset URL
// resolver rooted at the manifest's asset prefix.
func resolveThemeConfig(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("present: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("present: select theme %q/%q: %w", name, variant, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("present: theme %q/%q resolved without manifest", name, variant)
	}

	manifest := selection.Manifest
	tokens := mergeStringMaps(manifest.Tokens, nil)
	partials := mergeStringMaps(manifest.Templates, nil)
	assets := manifest.Assets
	if v, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStringMaps(tokens, v.Tokens)
		partials = mergeStringMaps(partials, v.Templates)
		assets = mergeAssets(assets, v.Assets)
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(assets),
	}, nil
}

// cssVarsStyle renders the configuration's CSS custom properties as a :root
// block, sorted for stable output.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func assetResolver(assets theme.Assets) func(string) string {
	return func(key string) string {
		file, ok := assets.Files[key]
		if !ok || strings.TrimSpace(file) == "" {
			return ""
		}
		prefix := strings.TrimSuffix(assets.Prefix, "/")
		if prefix == "" {
			return file
		}
		return prefix + "/" + strings.TrimPrefix(file, "/")
	}
}

func mergeStringMaps(base, overlay map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overlay))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overlay {
		out[key] = value
	}
	return out
}

func mergeAssets(base, overlay theme.Assets) theme.Assets {
	merged := theme.Assets{
		Prefix: base.Prefix,
		Files:  mergeStringMaps(base.Files, overlay.Files),
	}
	if strings.TrimSpace(overlay.Prefix) != "" {
		merged.Prefix = overlay.Prefix
	}
	return merged
}
