// Package audit provides a tamper-evident, hash-chained record of posting
// activity. Each record folds the previous record's hash into its own, so
// any edit or removal inside the chain is detectable after the fact.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Record is one link of the audit chain.
type Record struct {
	Timestamp    string `json:"timestamp"`
	PreviousHash string `json:"previous_hash"`
	Payload      string `json:"payload"`
	Hash         string `json:"hash"`
}

// Chain accumulates hash-chained audit records. Safe for concurrent use.
type Chain struct {
	mu      sync.Mutex
	last    string
	records []Record
}

// NewChain creates an empty chain anchored on a zero hash.
func NewChain() *Chain {
	return &Chain{last: strings.Repeat("0", 64)}
}

// Append adds a record for the payload and returns it.
func (c *Chain) Append(payload string) Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := Record{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		PreviousHash: c.last,
		Payload:      payload,
	}
	rec.Hash = recordHash(rec)
	c.last = rec.Hash
	c.records = append(c.records, rec)
	return rec
}

// Records returns a copy of the accumulated chain.
func (c *Chain) Records() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Verify checks that a slice of records forms an unbroken hash chain.
func Verify(records []Record) bool {
	for i, rec := range records {
		if i > 0 && rec.PreviousHash != records[i-1].Hash {
			return false
		}
		if recordHash(rec) != rec.Hash {
			return false
		}
	}
	return true
}

func recordHash(rec Record) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", rec.PreviousHash, rec.Timestamp, rec.Payload)))
	return hex.EncodeToString(sum[:])
}
