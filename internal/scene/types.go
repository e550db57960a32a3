package scene

// NodeID uniquely identifies a node for the node's whole lifetime.
// IDs are assigned at creation and never reused while the node is reachable.
type NodeID string

// ComponentID identifies a behavior/component instance attached to a node.
// Component IDs live in the same reservation namespace as node IDs so that
// duplication can regenerate both from one reserved set.
type ComponentID string

// Dimensionality partitions node kinds into 2D and 3D families.
// Instance nodes carry no dimensionality of their own - their content lives
// in an externally persisted definition.
type Dimensionality int

const (
	DimNone Dimensionality = iota
	Dim2D
	Dim3D
)

func (d Dimensionality) String() string {
	switch d {
	case Dim2D:
		return "2d"
	case Dim3D:
		return "3d"
	default:
		return "none"
	}
}

// NodeKind enumerates the closed set of node variants.
//
// Kinds are distinguished by capability (Dimensionality, SupportsChildren)
// rather than by behavior subclassing, so mixed-dimensionality checks reduce
// to tag comparisons.
type NodeKind int

const (
	KindNode2D NodeKind = iota
	KindNode3D
	KindContainer2D
	KindContainer3D
	KindInstance
)

func (k NodeKind) String() string {
	switch k {
	case KindNode2D:
		return "node2d"
	case KindNode3D:
		return "node3d"
	case KindContainer2D:
		return "container2d"
	case KindContainer3D:
		return "container3d"
	case KindInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// Dimensionality returns the 2D/3D family of the kind.
func (k NodeKind) Dimensionality() Dimensionality {
	switch k {
	case KindNode2D, KindContainer2D:
		return Dim2D
	case KindNode3D, KindContainer3D:
		return Dim3D
	default:
		return DimNone
	}
}

// SupportsChildren reports whether nodes of this kind may own children.
// Instance nodes may not: their subtree is defined by the referenced file.
func (k NodeKind) SupportsChildren() bool {
	return k != KindInstance
}

// ContainerKind returns the container kind matching a dimensionality.
// Used when grouping a selection into a fresh container node.
func ContainerKind(d Dimensionality) NodeKind {
	if d == Dim3D {
		return KindContainer3D
	}
	return KindContainer2D
}

// Vec3 is a three-component vector. 2D nodes use the X/Y components and hold
// Z at its identity value.
type Vec3 struct {
	X, Y, Z float64
}

// Mul returns the component-wise product of two vectors.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Add returns the component-wise sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference of two vectors.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Transform is a local TRS pose relative to the owning parent.
// Rotation is Euler angles in degrees, applied in Z-Y-X order. 2D nodes use
// Translation X/Y, Rotation Z and Scale X/Y.
type Transform struct {
	Translation Vec3
	Rotation    Vec3
	Scale       Vec3
}

// IdentityTransform returns the no-op transform.
func IdentityTransform() Transform {
	return Transform{Scale: Vec3{1, 1, 1}}
}

// Component is a behavior/component instance attached to a node.
// The core never executes components; it only preserves them through
// structural edits and regenerates their IDs on duplication.
type Component struct {
	ID    ComponentID
	Kind  string
	Props map[string]any
}
