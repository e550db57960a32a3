package scene

import "math"

// World-space transform composition.
//
// The editor convention is TRS with Euler rotation applied in Z-Y-X order and
// additive rotation across the parent chain. Shear introduced by rotated
// non-uniform scale is not modelled; compose and solveLocal are exact
// inverses of each other, which is the property undo/redo relies on.

// WorldTransform returns n's pose composed through every ancestor, root first.
func WorldTransform(n *Node) Transform {
	chain := make([]*Node, 0, 8)
	for p := n; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	world := IdentityTransform()
	for i := len(chain) - 1; i >= 0; i-- {
		world = compose(world, chain[i].Transform)
	}
	return world
}

// SetWorldTransform recomputes n's local transform so its world pose equals
// want under its current parent. Used by reparenting with world preservation.
func SetWorldTransform(n *Node, want Transform) {
	parentWorld := IdentityTransform()
	if n.parent != nil {
		parentWorld = WorldTransform(n.parent)
	}
	n.Transform = solveLocal(parentWorld, want)
}

// compose applies a local TRS under a parent world TRS.
func compose(parent, local Transform) Transform {
	return Transform{
		Translation: parent.Translation.Add(rotate(parent.Rotation, parent.Scale.Mul(local.Translation))),
		Rotation:    parent.Rotation.Add(local.Rotation),
		Scale:       parent.Scale.Mul(local.Scale),
	}
}

// solveLocal inverts compose: compose(parent, solveLocal(parent, world)) == world
// for any parent with non-zero scale components.
func solveLocal(parent, world Transform) Transform {
	return Transform{
		Translation: safeDiv(unrotate(parent.Rotation, world.Translation.Sub(parent.Translation)), parent.Scale),
		Rotation:    world.Rotation.Sub(parent.Rotation),
		Scale:       safeDiv(world.Scale, parent.Scale),
	}
}

// rotate applies Euler angles (degrees, Z-Y-X order) to a vector.
func rotate(deg Vec3, v Vec3) Vec3 {
	v = rotZ(deg.Z, v)
	v = rotY(deg.Y, v)
	v = rotX(deg.X, v)
	return v
}

// unrotate applies the inverse rotation (X-Y-Z order, negated angles).
func unrotate(deg Vec3, v Vec3) Vec3 {
	v = rotX(-deg.X, v)
	v = rotY(-deg.Y, v)
	v = rotZ(-deg.Z, v)
	return v
}

func rotZ(deg float64, v Vec3) Vec3 {
	s, c := sincos(deg)
	return Vec3{v.X*c - v.Y*s, v.X*s + v.Y*c, v.Z}
}

func rotY(deg float64, v Vec3) Vec3 {
	s, c := sincos(deg)
	return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

func rotX(deg float64, v Vec3) Vec3 {
	s, c := sincos(deg)
	return Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
}

func sincos(deg float64) (sin, cos float64) {
	return math.Sincos(deg * math.Pi / 180)
}

// safeDiv divides component-wise, mapping zero denominators to zero rather
// than Inf so degenerate parent scales do not poison the tree.
func safeDiv(v, by Vec3) Vec3 {
	return Vec3{div(v.X, by.X), div(v.Y, by.Y), div(v.Z, by.Z)}
}

func div(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
