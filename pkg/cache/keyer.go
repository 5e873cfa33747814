package cache

// VisualizationKeyOpts are the layout-affecting options folded into a
// visualization cache key. Two requests with the same scenes but different
// canvas geometry must cache separately.
type VisualizationKeyOpts struct {
	Width       float64
	Height      float64
	Padding     float64
	ZoneSpacing float64
	Fallback    bool
}

// PreviewKeyOpts are the options folded into an SVG preview cache key.
type PreviewKeyOpts struct {
	SceneID string
	Width   float64
	Height  float64
}

// Keyer generates cache keys for the different cached artifact kinds.
type Keyer interface {
	// VisualizationKey generates a key for a processed response,
	// from the content hash of the raw request.
	VisualizationKey(requestHash string, opts VisualizationKeyOpts) string

	// PreviewKey generates a key for a rendered SVG preview,
	// from the content hash of the processed visualization.
	PreviewKey(vizHash string, opts PreviewKeyOpts) string
}

// DefaultKeyer generates hash-based keys with stable prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// VisualizationKey generates a key for a processed response.
func (k *DefaultKeyer) VisualizationKey(requestHash string, opts VisualizationKeyOpts) string {
	return hashKey("viz", requestHash, opts)
}

// PreviewKey generates a key for a rendered SVG preview.
func (k *DefaultKeyer) PreviewKey(vizHash string, opts PreviewKeyOpts) string {
	return hashKey("preview", vizHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation, so
// different users or lessons get separate cache namespaces.
//
// Example usage:
//
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// VisualizationKey generates a prefixed key for a processed response.
func (k *ScopedKeyer) VisualizationKey(requestHash string, opts VisualizationKeyOpts) string {
	return k.prefix + k.inner.VisualizationKey(requestHash, opts)
}

// PreviewKey generates a prefixed key for a rendered SVG preview.
func (k *ScopedKeyer) PreviewKey(vizHash string, opts PreviewKeyOpts) string {
	return k.prefix + k.inner.PreviewKey(vizHash, opts)
}
