package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStridedUploadPacksElementsAtStride(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6} // three 2-byte elements, tightly packed
	dst := make([]byte, 3*4)        // destination stride of 4 bytes per element

	StridedUpload(dst, data, 2, 4, 3)

	assert.Equal(t, []byte{1, 2, 0, 0, 3, 4, 0, 0, 5, 6, 0, 0}, dst)
}

func TestStridedUploadEqualStrideIsPlainCopy(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	dst := make([]byte, 4)

	StridedUpload(dst, data, 2, 2, 2)

	assert.Equal(t, []byte{1, 2, 3, 4}, dst)
}
