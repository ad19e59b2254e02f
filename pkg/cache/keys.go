package cache

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs that change a layout.
type LayoutKeyOpts struct {
	Focus       string  `json:"focus"`
	Target      string  `json:"target,omitempty"`
	Style       string  `json:"style"`
	Generations int     `json:"generations,omitempty"`
	BaseSize    float64 `json:"base_size"`
	DetailSize  float64 `json:"detail_size"`
	Compact     bool    `json:"compact,omitempty"`
	Measurer    string  `json:"measurer"` // layout.MeasurerID
}

// ArtifactKeyOpts are the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Renderer    string  `json:"renderer,omitempty"`
	LinkPrefix  string  `json:"link_prefix,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Caption     bool    `json:"caption,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
	Detailed    bool    `json:"detailed,omitempty"`
}

// DefaultKeyer hashes the key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
