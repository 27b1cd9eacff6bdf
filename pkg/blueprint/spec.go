package blueprint

// Spec is the on-disk description of a blueprint. YAML and JSON documents
// use the same keys.
type Spec struct {
	Name        string      `yaml:"name"`
	ParentClass string      `yaml:"parent_class,omitempty"`
	Interfaces  []string    `yaml:"interfaces,omitempty"`
	Components  []string    `yaml:"components,omitempty"`
	Graphs      []GraphSpec `yaml:"graphs"`
}

// GraphSpec describes one graph. Kind defaults to EventGraph.
type GraphSpec struct {
	Name  string     `yaml:"name"`
	Kind  string     `yaml:"kind,omitempty"`
	Nodes []NodeSpec `yaml:"nodes"`
}

// NodeSpec describes one node. A missing GUID is derived from the
// blueprint, graph and node names; Enabled defaults to true.
type NodeSpec struct {
	Title        string            `yaml:"title"`
	Kind         string            `yaml:"kind"`
	GUID         string            `yaml:"guid,omitempty"`
	X            int               `yaml:"x,omitempty"`
	Y            int               `yaml:"y,omitempty"`
	Comment      string            `yaml:"comment,omitempty"`
	Enabled      *bool             `yaml:"enabled,omitempty"`
	AdvancedPins bool              `yaml:"advanced_pins,omitempty"`
	Details      map[string]string `yaml:"details,omitempty"`
	Pins         []PinSpec         `yaml:"pins,omitempty"`
}

// PinSpec describes one pin.
type PinSpec struct {
	Name        string     `yaml:"name"`
	Type        string     `yaml:"type"`
	Direction   string     `yaml:"direction"`
	SubType     string     `yaml:"sub_type,omitempty"`
	Default     string     `yaml:"default,omitempty"`
	IsArray     bool       `yaml:"is_array,omitempty"`
	IsReference bool       `yaml:"is_reference,omitempty"`
	Links       []LinkSpec `yaml:"links,omitempty"`
}

// LinkSpec names the far end of a link: a node (by GUID or title) and one of
// its pins. Links are symmetric; declaring one end is enough.
type LinkSpec struct {
	Node string `yaml:"node"`
	Pin  string `yaml:"pin"`
}
