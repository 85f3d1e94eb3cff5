package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingIdleByDefault(t *testing.T) {
	p := &Pending{}

	assert.False(t, p.Awaiting())

	payload, armed := p.Take()
	assert.False(t, armed)
	assert.Nil(t, payload)
}

func TestPendingArmAndTake(t *testing.T) {
	p := &Pending{}
	p.Arm("the-payload")

	assert.True(t, p.Awaiting())

	payload, armed := p.Take()
	require.True(t, armed)
	assert.Equal(t, "the-payload", payload)
}

func TestTakeClearsTheSlot(t *testing.T) {
	p := &Pending{}
	p.Arm("once")

	_, armed := p.Take()
	require.True(t, armed)

	assert.False(t, p.Awaiting())
	payload, armed := p.Take()
	assert.False(t, armed)
	assert.Nil(t, payload, "a taken slot must not carry a stale payload")
}

func TestArmReplacesPayload(t *testing.T) {
	p := &Pending{}
	p.Arm("first")
	p.Arm("second")

	payload, armed := p.Take()
	require.True(t, armed)
	assert.Equal(t, "second", payload)
}
