package gfxcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiateDropsUnsupportedPreservingOrder(t *testing.T) {
	requested := []string{"VK_KHR_surface", "VK_KHR_made_up", "VK_KHR_xcb_surface"}
	available := []string{"VK_KHR_xcb_surface", "VK_KHR_surface"}

	got := negotiate(requested, available)
	assert.Equal(t, []string{"VK_KHR_surface", "VK_KHR_xcb_surface"}, got)
}

func TestNegotiateEmptyAvailableDropsAll(t *testing.T) {
	got := negotiate([]string{"a", "b"}, nil)
	assert.Empty(t, got)
}

func TestNullTerminatedAppendsNulByte(t *testing.T) {
	got := nullTerminated([]string{"VK_KHR_swapchain", "VK_KHR_surface"})
	assert.Equal(t, []string{"VK_KHR_swapchain\x00", "VK_KHR_surface\x00"}, got)
}

func TestNullTerminatedPreservesLength(t *testing.T) {
	got := nullTerminated(nil)
	assert.Len(t, got, 0)
}
