package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EffectDef holds the default timing and easing for one effect kind.
// Callers may override either field per request; the catalog only fills gaps.
type EffectDef struct {
	Duration time.Duration
	Easing   string
}

// Catalog maps effect kinds to their defaults and easing names to CSS
// timing functions. Lookups never mutate, so a single instance is safe
// to share across goroutines.
type Catalog struct {
	effects map[string]EffectDef
	curves  map[string]string
}

// Default returns the built-in catalog covering every supported effect kind.
func Default() *Catalog {
	return &Catalog{
		effects: map[string]EffectDef{
			"appear":     {Duration: 400 * time.Millisecond, Easing: "backOut"},
			"disappear":  {Duration: 300 * time.Millisecond, Easing: "easeIn"},
			"hoverEnter": {Duration: 200 * time.Millisecond, Easing: "easeOut"},
			"hoverExit":  {Duration: 150 * time.Millisecond, Easing: "easeOut"},
			"click":      {Duration: 300 * time.Millisecond, Easing: "pulse"},
		},
		curves: map[string]string{
			"easeIn":    "cubic-bezier(0.55, 0.055, 0.675, 0.19)",
			"easeOut":   "cubic-bezier(0.215, 0.61, 0.355, 1)",
			"easeInOut": "cubic-bezier(0.645, 0.045, 0.355, 1)",
			"backOut":   "cubic-bezier(0.175, 0.885, 0.32, 1.275)",
			"pulse":     "cubic-bezier(0.4, 0, 0.6, 1)",
			"bounce":    "cubic-bezier(0.68, -0.55, 0.265, 1.55)",
			"slide":     "cubic-bezier(0.25, 0.46, 0.45, 0.94)",
		},
	}
}

// Lookup returns the defaults for an effect kind.
func (c *Catalog) Lookup(kind string) (EffectDef, bool) {
	def, ok := c.effects[kind]
	return def, ok
}

// Curve resolves an easing name to its CSS timing function.
// Unknown names return the empty string; renderers fall back to their own default.
func (c *Catalog) Curve(easing string) string {
	return c.curves[easing]
}

// Kinds lists the effect kinds the catalog has defaults for.
func (c *Catalog) Kinds() []string {
	out := make([]string, 0, len(c.effects))
	for k := range c.effects {
		out = append(out, k)
	}
	return out
}

// fileEffect is the on-disk shape of one effect override.
type fileEffect struct {
	DurationMs int64  `json:"duration_ms" yaml:"duration_ms" toml:"duration_ms"`
	Easing     string `json:"easing" yaml:"easing" toml:"easing"`
}

// fileCatalog is the on-disk shape of a catalog override file.
type fileCatalog struct {
	Effects map[string]fileEffect `json:"effects" yaml:"effects" toml:"effects"`
	Curves  map[string]string     `json:"curves" yaml:"curves" toml:"curves"`
}

// Load reads a catalog override file based on its extension and merges it
// over the built-in defaults. Supports: .yaml/.yml, .json, .toml
func Load(path string) (*Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf("empty catalog path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc fileCatalog
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &fc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported catalog extension: %s", ext)
	}
	cat := Default()
	for kind, fe := range fc.Effects {
		def, ok := cat.effects[kind]
		if !ok {
			return nil, fmt.Errorf("catalog overrides unknown effect kind: %s", kind)
		}
		if fe.DurationMs > 0 {
			def.Duration = time.Duration(fe.DurationMs) * time.Millisecond
		}
		if fe.Easing != "" {
			def.Easing = fe.Easing
		}
		cat.effects[kind] = def
	}
	for name, css := range fc.Curves {
		if css == "" {
			return nil, fmt.Errorf("catalog curve %q has empty timing function", name)
		}
		cat.curves[name] = css
	}
	return cat, nil
}
