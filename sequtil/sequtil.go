// Package sequtil provides the small set of pure helper functions shared by
// the orchestration runtime's admission pipeline: symphony/resource name
// parsing, instance-id construction, canonical request hashing, and
// execution-context assembly.
package sequtil

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/c360/musicalconductor/bus"
	"github.com/c360/musicalconductor/sequence"
)

// ExtractSymphonyName returns the domain prefix of a sequence name: the
// substring up to (and excluding) its last '.'. A name with no '.' is its
// own symphony name.
func ExtractSymphonyName(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name
	}
	return name[:idx]
}

// ExtractResourceId scopes a request to the narrowest available object: an
// explicit "elementId" in data, else an explicit "resourceId", else the
// sequence's symphony name.
func ExtractResourceId(name string, data map[string]any) string {
	if data != nil {
		if v, ok := data["elementId"]; ok {
			if s := fmt.Sprint(v); s != "" {
				return s
			}
		}
		if v, ok := data["resourceId"]; ok {
			if s := fmt.Sprint(v); s != "" {
				return s
			}
		}
	}
	return ExtractSymphonyName(name)
}

var instanceCounter atomic.Uint64

// CreateSequenceInstanceId builds a process-unique instance id of the form
// "<name>:<resourceId>:<counter>". tag is an optional caller-supplied
// disambiguator appended to the id; pass "" to omit it.
func CreateSequenceInstanceId(name, resourceID, tag string) string {
	n := instanceCounter.Add(1)
	if tag == "" {
		return fmt.Sprintf("%s:%s:%d", name, resourceID, n)
	}
	return fmt.Sprintf("%s:%s:%d:%s", name, resourceID, n, tag)
}

// CanonicalHash computes a deterministic 64-bit hash of (name, data,
// priority). Map keys are sorted lexicographically at every level, arrays
// preserve order, scalars render by their lexical form, and keys beginning
// with '_' are excluded - so handler-appended bookkeeping (e.g. "_errors")
// never affects the hash. The hash is invariant under key reordering of
// data.
func CanonicalHash(name string, data map[string]any, priority sequence.Priority) uint64 {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('\x1f')
	sb.WriteString(string(priority))
	sb.WriteByte('\x1f')
	writeCanonical(&sb, data)
	return mix64(sb.String())
}

func writeCanonical(sb *strings.Builder, v any) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			if strings.HasPrefix(k, "_") {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(k)
			sb.WriteByte(':')
			writeCanonical(sb, val[k])
		}
		sb.WriteByte('}')
	case []any:
		sb.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeCanonical(sb, item)
		}
		sb.WriteByte(']')
	case nil:
		sb.WriteString("null")
	case string:
		sb.WriteString(strconv.Quote(val))
	case bool:
		sb.WriteString(strconv.FormatBool(val))
	case float64:
		sb.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case int:
		sb.WriteString(strconv.Itoa(val))
	case int64:
		sb.WriteString(strconv.FormatInt(val, 10))
	default:
		sb.WriteString(fmt.Sprint(val))
	}
}

// mix64 is a non-cryptographic 64-bit string mixer (FNV-1a).
func mix64(s string) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}

// DedupWindow is the narrow view of the dedup window the admission path
// needs: a lookup by canonical hash. dedup.DuplicationDetector satisfies
// this interface.
type DedupWindow interface {
	Contains(hash uint64) bool
}

// DedupCheck is the result of DeduplicateRequest.
type DedupCheck struct {
	IsDuplicate bool
	Reason      string
	Hash        uint64
}

// DeduplicateRequest computes the canonical hash of (name, data, priority)
// and reports whether it is already present in window. The hash is always
// returned, duplicate or not, so the caller can record it regardless of
// outcome.
func DeduplicateRequest(window DedupWindow, name string, data map[string]any, priority sequence.Priority) DedupCheck {
	hash := CanonicalHash(name, data, priority)
	if window != nil && window.Contains(hash) {
		return DedupCheck{IsDuplicate: true, Reason: "duplicate-request", Hash: hash}
	}
	return DedupCheck{IsDuplicate: false, Hash: hash}
}

// CreateExecutionContext assembles the base context for a request. The
// caller (the orchestrator) augments it with the resolved sequence before
// execution begins.
func CreateExecutionContext(req *sequence.Request, eventBus *bus.Bus) *sequence.ExecutionContext {
	return &sequence.ExecutionContext{
		Request:       req,
		Payload:       map[string]any{},
		EventBus:      eventBus,
		ExecutionType: sequence.ExecutionImmediate,
		Priority:      req.Priority,
		InstanceID:    req.InstanceID,
		SymphonyName:  req.SymphonyName,
		ResourceID:    req.ResourceID,
	}
}
