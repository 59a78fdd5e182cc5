// Package gfxmath provides the small set of matrix helpers the render
// loop needs to go from a camera's field of view to a buffer layout
// Vulkan's clip space actually expects.
package gfxmath

import lin "github.com/xlab/linmath"

// Camera describes a perspective projection in the usual OpenGL
// convention (radians, right-handed, Y up).
type Camera struct {
	FovYRadians float32
	Aspect      float32
	Near, Far   float32

	Eye, Center, Up lin.Vec3
}

// ViewMatrix builds the camera's look-at matrix.
func (c Camera) ViewMatrix() lin.Mat4x4 {
	var view lin.Mat4x4
	view.LookAt(&c.Eye, &c.Center, &c.Up)
	return view
}

// ProjectionMatrix builds the camera's perspective matrix and applies
// VulkanClipFixup so the result is ready to feed straight into a
// uniform buffer a Vulkan vertex shader reads.
func (c Camera) ProjectionMatrix() lin.Mat4x4 {
	var proj, fixed lin.Mat4x4
	proj.Perspective(c.FovYRadians, c.Aspect, c.Near, c.Far)
	VulkanClipFixup(&fixed, &proj)
	return fixed
}

// VulkanClipFixup converts an OpenGL-style projection matrix to the
// clip-space convention Vulkan expects: linmath's Perspective/Ortho
// build matrices for GL's [-1,1] Y-up, [-1,1]-depth clip space, while
// Vulkan's is Y-down with a [0,1] depth range. This multiplies proj by
// a fixup matrix that flips Y and rescales/re-biases Z, writing the
// result into m (m and proj may not alias).
func VulkanClipFixup(m, proj *lin.Mat4x4) {
	m.Fill(1.0)
	// Flip Y in clipspace. X = -1, Y = -1 is topLeft in Vulkan.
	m.ScaleAniso(m, 1.0, -1.0, 1.0)
	// Z depth is [0, 1] range instead of [-1, 1].
	m.ScaleAniso(m, 1.0, 1.0, 0.5)
	m.Translate(0.0, 0.0, 1.0)
	m.Mult(m, proj)
}

// DegreesToRadians is a convenience re-export so callers building a
// Camera don't need to import linmath directly just for unit
// conversion.
func DegreesToRadians(degrees float32) float32 {
	return lin.DegreesToRadians(degrees)
}
