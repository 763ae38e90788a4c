// Package dedup provides DuplicationDetector, the sliding-hash window that
// backs admission-time deduplication.
//
// # Basic Usage
//
//	detector, _ := dedup.New(ctx, 1000*time.Millisecond)
//	defer detector.Close()
//
//	check := sequtil.DeduplicateRequest(detector, name, data, priority)
//	if !check.IsDuplicate {
//	    detector.Record(check.Hash)
//	}
package dedup
