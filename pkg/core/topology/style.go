package topology

// Stroke is the line pattern of a rendered connection.
type Stroke string

const (
	StrokeSolid  Stroke = "solid"
	StrokeDashed Stroke = "dashed"
	StrokeDotted Stroke = "dotted"
)

// EdgeStyle is the style descriptor derived from a relationship kind.
type EdgeStyle struct {
	Stroke   Stroke `json:"stroke"`
	Animated bool   `json:"animated,omitempty"`
	Directed bool   `json:"directed,omitempty"`
}

// DefaultStyles is the relationship-kind-to-style table used by DefaultRegistry.
func DefaultStyles() map[Kind]EdgeStyle {
	return map[Kind]EdgeStyle{
		KindContains:   {Stroke: StrokeSolid, Directed: true},
		KindPrecedes:   {Stroke: StrokeSolid, Directed: true},
		KindApplies:    {Stroke: StrokeDashed, Animated: true, Directed: true},
		KindVisualizes: {Stroke: StrokeDotted, Directed: true},
		KindRelates:    {Stroke: StrokeDashed},
	}
}

// Style returns the style for kind. Unknown kinds get a plain solid line.
func (r *Registry) Style(kind Kind) EdgeStyle {
	if s, ok := r.styles[kind]; ok {
		return s
	}
	return EdgeStyle{Stroke: StrokeSolid}
}
