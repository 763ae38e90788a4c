package sequtil

import (
	"testing"

	"github.com/c360/musicalconductor/sequence"
	"github.com/stretchr/testify/assert"
)

func TestExtractSymphonyName(t *testing.T) {
	assert.Equal(t, "Canvas", ExtractSymphonyName("Canvas.drop-symphony"))
	assert.Equal(t, "Standalone", ExtractSymphonyName("Standalone"))
	assert.Equal(t, "A.B", ExtractSymphonyName("A.B.c-symphony"))
}

func TestExtractResourceId(t *testing.T) {
	assert.Equal(t, "elem-7", ExtractResourceId("Canvas.drop-symphony", map[string]any{"elementId": "elem-7"}))
	assert.Equal(t, "res-1", ExtractResourceId("Canvas.drop-symphony", map[string]any{"resourceId": "res-1"}))
	assert.Equal(t, "Canvas", ExtractResourceId("Canvas.drop-symphony", nil))
	assert.Equal(t, "Canvas", ExtractResourceId("Canvas.drop-symphony", map[string]any{"other": "x"}))

	// elementId wins over resourceId when both are present.
	assert.Equal(t, "elem-7",
		ExtractResourceId("Canvas.drop-symphony", map[string]any{"elementId": "elem-7", "resourceId": "res-1"}))
}

func TestCreateSequenceInstanceId_Unique(t *testing.T) {
	a := CreateSequenceInstanceId("Canvas.drop-symphony", "elem-7", "")
	b := CreateSequenceInstanceId("Canvas.drop-symphony", "elem-7", "")
	assert.NotEqual(t, a, b)
}

func TestCanonicalHash_StableUnderKeyReordering(t *testing.T) {
	h1 := CanonicalHash("Demo.ping-symphony", map[string]any{"a": 1, "b": "two"}, sequence.PriorityNormal)
	h2 := CanonicalHash("Demo.ping-symphony", map[string]any{"b": "two", "a": 1}, sequence.PriorityNormal)
	assert.Equal(t, h1, h2)
}

func TestCanonicalHash_ExcludesUnderscoreKeys(t *testing.T) {
	h1 := CanonicalHash("Demo.ping-symphony", map[string]any{"a": 1}, sequence.PriorityNormal)
	h2 := CanonicalHash("Demo.ping-symphony", map[string]any{"a": 1, "_errors": []any{"x"}}, sequence.PriorityNormal)
	assert.Equal(t, h1, h2)
}

func TestCanonicalHash_DifferentPriorityDifferentHash(t *testing.T) {
	h1 := CanonicalHash("Demo.ping-symphony", map[string]any{"a": 1}, sequence.PriorityNormal)
	h2 := CanonicalHash("Demo.ping-symphony", map[string]any{"a": 1}, sequence.PriorityHigh)
	assert.NotEqual(t, h1, h2)
}

func TestCanonicalHash_NestedMapsAndArrays(t *testing.T) {
	data1 := map[string]any{"outer": map[string]any{"x": 1, "y": []any{1, 2, 3}}}
	data2 := map[string]any{"outer": map[string]any{"y": []any{1, 2, 3}, "x": 1}}
	assert.Equal(t,
		CanonicalHash("Demo.ping-symphony", data1, sequence.PriorityNormal),
		CanonicalHash("Demo.ping-symphony", data2, sequence.PriorityNormal))
}

type fakeWindow struct{ hashes map[uint64]bool }

func (f fakeWindow) Contains(hash uint64) bool { return f.hashes[hash] }

func TestDeduplicateRequest(t *testing.T) {
	hash := CanonicalHash("Demo.ping-symphony", map[string]any{"a": 1}, sequence.PriorityNormal)
	window := fakeWindow{hashes: map[uint64]bool{hash: true}}

	check := DeduplicateRequest(window, "Demo.ping-symphony", map[string]any{"a": 1}, sequence.PriorityNormal)
	assert.True(t, check.IsDuplicate)
	assert.Equal(t, "duplicate-request", check.Reason)
	assert.Equal(t, hash, check.Hash)

	fresh := DeduplicateRequest(window, "Demo.other-symphony", map[string]any{"a": 1}, sequence.PriorityNormal)
	assert.False(t, fresh.IsDuplicate)
}

func TestDeduplicateRequest_NilWindow(t *testing.T) {
	check := DeduplicateRequest(nil, "Demo.ping-symphony", nil, sequence.PriorityNormal)
	assert.False(t, check.IsDuplicate)
}

func TestCreateExecutionContext(t *testing.T) {
	req := &sequence.Request{
		SequenceName: "Demo.ping-symphony",
		Priority:     sequence.PriorityHigh,
		InstanceID:   "inst-1",
		SymphonyName: "Demo",
		ResourceID:   "res-1",
	}

	ec := CreateExecutionContext(req, nil)
	assert.Same(t, req, ec.Request)
	assert.Equal(t, sequence.PriorityHigh, ec.Priority)
	assert.Equal(t, "inst-1", ec.InstanceID)
	assert.NotNil(t, ec.Payload)
}
