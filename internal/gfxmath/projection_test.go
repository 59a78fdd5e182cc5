package gfxmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	lin "github.com/xlab/linmath"
)

func TestVulkanClipFixupFlipsYAndRescalesZ(t *testing.T) {
	var proj lin.Mat4x4
	proj.Identity()

	var fixed lin.Mat4x4
	VulkanClipFixup(&fixed, &proj)

	// Identity through the fixup reduces to the fixup matrix itself:
	// Y flipped, Z scaled by 0.5 and biased by the translate step.
	assert.InDelta(t, -1, fixed[1][1], 1e-5)
	assert.InDelta(t, 1, fixed[0][0], 1e-5)
}

func TestDegreesToRadians(t *testing.T) {
	assert.InDelta(t, 3.14159265, DegreesToRadians(180), 1e-4)
	assert.InDelta(t, 0, DegreesToRadians(0), 1e-6)
}

func TestCameraProjectionMatrixDoesNotPanic(t *testing.T) {
	cam := Camera{
		FovYRadians: DegreesToRadians(60),
		Aspect:      16.0 / 9.0,
		Near:        0.1,
		Far:         1000,
		Eye:         lin.Vec3{0, 0, 5},
		Center:      lin.Vec3{0, 0, 0},
		Up:          lin.Vec3{0, 1, 0},
	}
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	assert.NotZero(t, view)
	assert.NotZero(t, proj)
}
