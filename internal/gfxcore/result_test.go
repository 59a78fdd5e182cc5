package gfxcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestFromVkResultMapsKnownCodes(t *testing.T) {
	assert.Equal(t, Success, FromVkResult(vk.Success))
	assert.Equal(t, ErrorOutOfDate, FromVkResult(vk.ErrorOutOfDate))
	assert.Equal(t, ErrorSuboptimal, FromVkResult(vk.Suboptimal))
	assert.Equal(t, ErrorDeviceLost, FromVkResult(vk.ErrorDeviceLost))
}

func TestFromVkResultUnknownFallsBack(t *testing.T) {
	assert.Equal(t, ErrorUnknown, FromVkResult(vk.ErrorExtensionNotPresent))
}

func TestResultStringNamesEveryCode(t *testing.T) {
	assert.Equal(t, "Success", Success.String())
	assert.Equal(t, "OutOfDate", ErrorOutOfDate.String())
	assert.Equal(t, "Unknown", ErrorUnknown.String())
}

func TestIsErrorOnlyTrueForNonSuccess(t *testing.T) {
	assert.False(t, IsError(vk.Success))
	assert.True(t, IsError(vk.ErrorDeviceLost))
}

func TestNewErrorNilOnSuccess(t *testing.T) {
	assert.Nil(t, NewError(vk.Success))
}

func TestNewErrorWrapsKnownCode(t *testing.T) {
	err := NewError(vk.ErrorDeviceLost)
	assert.EqualError(t, err, "DeviceLost")
}
