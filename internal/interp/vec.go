package interp

// Vec2 is a 2D value, e.g. a position or a size.
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Interpolate(to Vec2, t float64) Vec2 {
	return Vec2{X: lerp(v.X, to.X, t), Y: lerp(v.Y, to.Y, t)}
}

// Vec3 is a 3D value.
type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Interpolate(to Vec3, t float64) Vec3 {
	return Vec3{X: lerp(v.X, to.X, t), Y: lerp(v.Y, to.Y, t), Z: lerp(v.Z, to.Z, t)}
}
