package layout

import "github.com/matzehuels/mindscape/pkg/core/topology"

// Config tunes the force simulation.
type Config struct {
	Iterations        int                `toml:"iterations" json:"iterations" validate:"gt=0,lte=10000"`
	Seed              uint64             `toml:"seed" json:"seed"`
	Repulsion         float64            `toml:"repulsion" json:"repulsion" validate:"gte=0"`
	LinkDistance      float64            `toml:"link_distance" json:"link_distance" validate:"gt=0"`
	LinkStrength      float64            `toml:"link_strength" json:"link_strength" validate:"gte=0,lte=1"`
	CollisionStrength float64            `toml:"collision_strength" json:"collision_strength" validate:"gte=0,lte=1"`
	CenterStrength    float64            `toml:"center_strength" json:"center_strength" validate:"gte=0,lte=1"`
	VelocityDecay     float64            `toml:"velocity_decay" json:"velocity_decay" validate:"gte=0,lt=1"`
	InitialRadius     float64            `toml:"initial_radius" json:"initial_radius" validate:"gt=0"`
	DefaultRadius     float64            `toml:"default_radius" json:"default_radius" validate:"gt=0"`
	Radii             map[string]float64 `toml:"radii" json:"radii,omitempty" validate:"dive,gt=0"`
}

// DefaultSeed is the seed used when none is configured.
const DefaultSeed = uint64(42)

// DefaultConfig returns settings tuned for diagrams of a few hundred nodes.
func DefaultConfig() Config {
	return Config{
		Iterations:        300,
		Seed:              DefaultSeed,
		Repulsion:         900,
		LinkDistance:      160,
		LinkStrength:      0.3,
		CollisionStrength: 0.7,
		CenterStrength:    0.02,
		VelocityDecay:     0.4,
		InitialRadius:     320,
		DefaultRadius:     40,
		Radii: map[string]float64{
			string(topology.CategoryPhase):         90,
			string(topology.CategorySubPhase):      70,
			string(topology.CategoryComponent):     60,
			string(topology.CategoryMentalModel):   48,
			string(topology.CategoryVisualization): 36,
		},
	}
}

// Radius returns the collision radius of category.
func (c Config) Radius(category topology.Category) float64 {
	if r, ok := c.Radii[string(category)]; ok {
		return r
	}
	return c.DefaultRadius
}
