package icons

// Icon is one vector icon as defined in YAML
type Icon struct {
	// Name is the map key in the YAML file (set after unmarshaling)
	Name    string   `yaml:"-" json:"name"`
	ViewBox string   `yaml:"view_box" json:"view_box"`
	Paths   []string `yaml:"paths" json:"paths"`
}

// iconFile is the top-level YAML document
type iconFile struct {
	Icons map[string]Icon `yaml:"icons"`
}

// Options parameterise rendering. Zero values fall back to the defaults.
type Options struct {
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"stroke_width"`
	Size        int     `json:"size"`
}

// Defaults used when Options fields are zero
const (
	DefaultColor       = "#034694"
	DefaultStrokeWidth = 0
	DefaultSize        = 24
)
