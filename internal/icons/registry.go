// Package icons renders the app's SVG icons from an embedded registry.
package icons

import (
	"embed"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"journal/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// hex (#rgb .. #rrggbbaa) or a named color
var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+)$`)

// Registry holds the icons loaded from YAML
type Registry struct {
	icons map[string]*Icon
	mu    sync.RWMutex
}

// NewRegistry creates a registry and loads the embedded icon file
func NewRegistry() (*Registry, error) {
	r := &Registry{icons: make(map[string]*Icon)}

	data, err := configFiles.ReadFile("config/icons.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read icons.yaml: %w", err)
	}
	if err := r.Load(data); err != nil {
		return nil, err
	}
	return r, nil
}

// Load adds or replaces the icons defined in a YAML document
func (r *Registry) Load(data []byte) error {
	var file iconFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal icons: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, icon := range file.Icons {
		if len(icon.Paths) == 0 {
			return fmt.Errorf("icon %s has no paths", name)
		}
		icon := icon
		icon.Name = name
		if icon.ViewBox == "" {
			icon.ViewBox = "0 0 24 24"
		}
		r.icons[name] = &icon
	}
	return nil
}

// Get returns the named icon
func (r *Registry) Get(name string) (*Icon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	icon, ok := r.icons[name]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("unknown icon: %s", name)}
	}
	return icon, nil
}

// Names lists the registered icons in alphabetical order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.icons))
	for name := range r.icons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the named icon as SVG markup
func (r *Registry) Render(name string, opts Options) (string, error) {
	icon, err := r.Get(name)
	if err != nil {
		return "", err
	}

	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return "", &domain.ValidationError{Message: err.Error()}
	}

	size := strconv.Itoa(opts.Size)
	stroke := strconv.FormatFloat(opts.StrokeWidth, 'f', -1, 64)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s" width="%s" height="%s">`, icon.ViewBox, size, size)
	for _, d := range icon.Paths {
		fmt.Fprintf(&b, `<path fill="%s" stroke="%s" stroke-width="%s" d="%s"></path>`, opts.Color, opts.Color, stroke, d)
	}
	b.WriteString(`</svg>`)
	return b.String(), nil
}

func (o Options) withDefaults() Options {
	if o.Color == "" {
		o.Color = DefaultColor
	}
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	return o
}

func (o Options) validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Color, validation.Match(colorPattern)),
		validation.Field(&o.Size, validation.Min(1), validation.Max(1024)),
		validation.Field(&o.StrokeWidth, validation.Min(0.0)),
	)
}
