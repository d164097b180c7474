package render

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// themeContext flattens a resolved theme selection into the shape templates
// consume. A nil config yields an empty context so templates can guard with
// simple truthiness checks.
func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":           cfg.Theme,
		"variant":        cfg.Variant,
		"tokens":         copyStringMap(cfg.Tokens),
		"css_vars":       copyStringMap(cfg.CSSVars),
		"css_vars_style": cssVarsStyle(cfg.CSSVars),
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(vars[key])
		sb.WriteString("; ")
	}
	return strings.TrimSpace(sb.String())
}
