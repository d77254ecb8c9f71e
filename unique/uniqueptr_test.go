package unique

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	Value int
}

func TestPtrDefault(t *testing.T) {
	var p Ptr[payload]

	assert.True(t, p.IsNil())
	assert.Nil(t, p.Get())
}

func TestPtrNew(t *testing.T) {
	p := New(&payload{Value: 42}, nil)

	assert.False(t, p.IsNil())
	assert.Equal(t, 42, p.Deref().Value)
}

func TestPtrMove(t *testing.T) {
	a := New(&payload{Value: 42}, nil)
	b := a.Move()

	assert.True(t, a.IsNil())
	assert.Nil(t, a.Get())
	assert.Equal(t, 42, b.Get().Value)
}

func TestPtrMoveFrom(t *testing.T) {
	var finalized int
	a := New(&payload{Value: 1}, func(*payload) { finalized++ })
	b := New(&payload{Value: 2}, nil)

	a.MoveFrom(&b)
	assert.Equal(t, 1, finalized)
	assert.True(t, b.IsNil())
	assert.Equal(t, 2, a.Get().Value)

	a.MoveFrom(&a)
	assert.False(t, a.IsNil())
	assert.Equal(t, 2, a.Get().Value)
}

func TestPtrReset(t *testing.T) {
	var finalized int
	p := New(&payload{Value: 42}, func(*payload) { finalized++ })

	p.Reset()
	assert.Equal(t, 1, finalized)
	assert.True(t, p.IsNil())

	p.Reset()
	assert.Equal(t, 1, finalized)
}

func TestPtrRelease(t *testing.T) {
	var finalized int
	p := New(&payload{Value: 42}, func(*payload) { finalized++ })

	raw := p.Release()
	assert.Equal(t, 0, finalized)
	assert.True(t, p.IsNil())
	assert.Equal(t, 42, raw.Value)

	p.Reset()
	assert.Equal(t, 0, finalized)
}
