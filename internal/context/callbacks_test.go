package context

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallbackRegistryFiresInRegistrationOrder(t *testing.T) {
	var r callbackRegistry
	var order []string
	r.Register("a", func() { order = append(order, "a") })
	r.Register("b", func() { order = append(order, "b") })
	r.Register("c", func() { order = append(order, "c") })

	r.Fire()
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestCallbackRegistryUnregisterSkipsThunk(t *testing.T) {
	var r callbackRegistry
	var order []string
	r.Register("a", func() { order = append(order, "a") })
	token := r.Register("b", func() { order = append(order, "b") })
	r.Register("c", func() { order = append(order, "c") })

	r.Unregister(token)
	r.Fire()
	assert.Equal(t, []string{"a", "c"}, order)
}

func TestCallbackRegistryUnregisterOutOfRangeIsNoop(t *testing.T) {
	var r callbackRegistry
	r.Register("a", func() {})
	assert.NotPanics(t, func() {
		r.Unregister(-1)
		r.Unregister(99)
	})
}

func TestAutoRemoveGroupRemoveAllUnregistersEveryEntry(t *testing.T) {
	var r callbackRegistry
	var fired int
	group := &AutoRemoveGroup{}
	group.add(&r, "a", func() { fired++ })
	group.add(&r, "b", func() { fired++ })

	group.RemoveAll()
	r.Fire()
	assert.Equal(t, 0, fired)
	assert.Empty(t, group.entries)
}
