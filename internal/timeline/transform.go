package timeline

import "cogentcore.org/core/math32"

// Transform is a clip's local placement: scale first, then rotation, then
// translation.
type Transform struct {
	Pos   math32.Vector3
	Quat  math32.Quat
	Scale math32.Vector3
}

func identityTransform() Transform {
	t := Transform{Scale: math32.Vec3(1, 1, 1)}
	t.Quat.SetIdentity()
	return t
}

// Matrix returns the local matrix.
func (t *Transform) Matrix() *math32.Matrix4 {
	var m math32.Matrix4
	m.SetTransform(t.Pos, t.Quat, t.Scale)
	return &m
}

// World composes the local matrix with the parent's: parent × local.
func (t *Transform) World(parent *math32.Matrix4) math32.Matrix4 {
	if parent == nil {
		parent = math32.Identity4()
	}
	var w math32.Matrix4
	w.MulMatrices(parent, t.Matrix())
	return w
}
