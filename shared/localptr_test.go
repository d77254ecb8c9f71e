package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalPtrDefault(t *testing.T) {
	var p LocalPtr[payload]

	assert.True(t, p.IsNil())
	assert.Nil(t, p.Get())
	assert.Equal(t, 0, p.UseCount())
}

func TestLocalPtrNew(t *testing.T) {
	p := NewLocal(&payload{Value: 42}, nil)

	assert.False(t, p.IsNil())
	assert.Equal(t, 42, p.Deref().Value)
	assert.Equal(t, 1, p.UseCount())

	p.Reset()
	assert.True(t, p.IsNil())
	assert.Equal(t, 0, p.UseCount())
}

func TestLocalPtrCloneAndCopy(t *testing.T) {
	a := NewLocal(&payload{Value: 42}, nil)
	b := a.Clone()
	var c LocalPtr[payload]
	c.CopyFrom(&b)

	assert.Equal(t, a.Get(), c.Get())
	assert.Equal(t, 3, a.UseCount())

	a.Reset()
	b.Reset()
	assert.Equal(t, 1, c.UseCount())
	assert.Equal(t, 42, c.Get().Value)
}

func TestLocalPtrCopyFromSelf(t *testing.T) {
	var finalized int
	a := NewLocal(&payload{Value: 42}, func(*payload) { finalized++ })

	a.CopyFrom(&a)
	assert.Equal(t, 0, finalized)
	assert.Equal(t, 1, a.UseCount())

	b := a.Clone()
	a.CopyFrom(&b)
	assert.Equal(t, 0, finalized)
	assert.Equal(t, 2, a.UseCount())
}

func TestLocalPtrMove(t *testing.T) {
	a := NewLocal(&payload{Value: 42}, nil)
	b := a.Clone()
	c := b.Move()

	assert.True(t, b.IsNil())
	assert.Equal(t, 2, a.UseCount())
	assert.Equal(t, 2, c.UseCount())
}

func TestLocalPtrMoveFrom(t *testing.T) {
	var finalized int
	a := NewLocal(&payload{Value: 1}, func(*payload) { finalized++ })
	b := NewLocal(&payload{Value: 2}, nil)

	a.MoveFrom(&b)
	assert.Equal(t, 1, finalized)
	assert.True(t, b.IsNil())
	assert.Equal(t, 2, a.Get().Value)

	a.MoveFrom(&a)
	assert.Equal(t, 1, finalized)
	assert.False(t, a.IsNil())
}

func TestLocalPtrFinalizeExactlyOnce(t *testing.T) {
	var finalized int
	a := NewLocal(&payload{Value: 42}, func(*payload) { finalized++ })
	b := a.Clone()

	a.Reset()
	assert.Equal(t, 0, finalized)
	b.Reset()
	assert.Equal(t, 1, finalized)
	b.Reset()
	assert.Equal(t, 1, finalized)
}
