package queue

import (
	"testing"

	"github.com/c360/musicalconductor/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func req(name string, priority sequence.Priority) *sequence.Request {
	return &sequence.Request{SequenceName: name, RequestID: name, Priority: priority}
}

func TestEnqueueDequeue_FIFOWithinBand(t *testing.T) {
	q := New(0)
	require.NoError(t, q.Enqueue(req("n1", sequence.PriorityNormal)))
	require.NoError(t, q.Enqueue(req("n2", sequence.PriorityNormal)))

	first, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "n1", first.RequestID)

	second, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "n2", second.RequestID)
}

func TestHighJumpsNormal(t *testing.T) {
	q := New(0)
	require.NoError(t, q.Enqueue(req("n1", sequence.PriorityNormal)))
	require.NoError(t, q.Enqueue(req("n2", sequence.PriorityNormal)))
	require.NoError(t, q.Enqueue(req("h1", sequence.PriorityHigh)))

	first, _ := q.Dequeue()
	assert.Equal(t, "h1", first.RequestID)
	second, _ := q.Dequeue()
	assert.Equal(t, "n1", second.RequestID)
	third, _ := q.Dequeue()
	assert.Equal(t, "n2", third.RequestID)
}

func TestChainedGoesToHeadOfNormal(t *testing.T) {
	q := New(0)
	require.NoError(t, q.Enqueue(req("n1", sequence.PriorityNormal)))
	require.NoError(t, q.Enqueue(req("n2", sequence.PriorityNormal)))
	require.NoError(t, q.Enqueue(req("c1", sequence.PriorityChained)))

	first, _ := q.Dequeue()
	assert.Equal(t, "c1", first.RequestID)
}

func TestDequeue_EmptyQueue(t *testing.T) {
	q := New(0)
	_, ok := q.Dequeue()
	assert.False(t, ok)
}

func TestSizeAndIsEmpty(t *testing.T) {
	q := New(0)
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 0, q.Size())

	require.NoError(t, q.Enqueue(req("n1", sequence.PriorityNormal)))
	assert.False(t, q.IsEmpty())
	assert.Equal(t, 1, q.Size())
}

func TestPeek_DoesNotRemove(t *testing.T) {
	q := New(0)
	require.NoError(t, q.Enqueue(req("n1", sequence.PriorityNormal)))

	peeked, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, "n1", peeked.RequestID)
	assert.Equal(t, 1, q.Size())
}

func TestSnapshot_HighFirst(t *testing.T) {
	q := New(0)
	require.NoError(t, q.Enqueue(req("n1", sequence.PriorityNormal)))
	require.NoError(t, q.Enqueue(req("h1", sequence.PriorityHigh)))

	snap := q.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "h1", snap[0].RequestID)
	assert.Equal(t, "n1", snap[1].RequestID)
}

func TestEnqueue_CapacityEnforced(t *testing.T) {
	q := New(1)
	require.NoError(t, q.Enqueue(req("n1", sequence.PriorityNormal)))
	err := q.Enqueue(req("n2", sequence.PriorityNormal))
	assert.Error(t, err)
}
