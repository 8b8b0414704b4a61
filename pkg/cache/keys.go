package cache

// LayoutKeyOpts holds the options that affect resolved chart geometry.
type LayoutKeyOpts struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Labels are the title, domain and range axis labels.
	Labels     []string `json:"labels,omitempty"`
	DateDomain bool     `json:"date_domain,omitempty"`
	Zone       string   `json:"zone,omitempty"`
	Legend     string   `json:"legend,omitempty"`
	ConfigHash string   `json:"config_hash,omitempty"`
}

// ArtifactKeyOpts holds the options that affect a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
	ShowPoints bool    `json:"show_points,omitempty"`
	Grid       bool    `json:"grid,omitempty"`
	ConfigHash string  `json:"config_hash,omitempty"`
}

// Keyer builds cache keys for each pipeline stage.
type Keyer interface {
	// LayoutKey returns the key for the geometry computed from data
	// identified by dataHash.
	LayoutKey(dataHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for an artifact rendered from geometry
	// identified by layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the stage inputs into "<stage>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(dataHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", dataHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
