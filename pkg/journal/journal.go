package journal

import (
	"fmt"
	"sync"

	"github.com/mikekulinski/zkmock/pkg/zxid"
)

// Op is the kind of mutation recorded in a journal entry.
type Op string

const (
	OpCreate  Op = "create"
	OpDelete  Op = "delete"
	OpSetData Op = "set_data"
	OpSetACL  Op = "set_acl"
)

// Entry is one applied mutation.
type Entry struct {
	Zxid     zxid.ZXID
	ClientID string
	Op       Op
	Path     string
}

// Journal is an in-memory, append-only record of the mutations the emulator
// has applied, in application order. Tests use it to assert on what happened
// without instrumenting the tree. With a positive capacity the oldest
// entries are dropped once the journal is full.
type Journal struct {
	// mu protects all the fields below. Hold it before reading or writing
	// any of them.
	mu       sync.Mutex
	entries  []Entry
	capacity int
	lastZxid zxid.ZXID
}

// New returns a journal. A capacity of zero keeps every entry.
func New(capacity int) *Journal {
	return &Journal{capacity: capacity}
}

// Append records one applied mutation. Entries must arrive with strictly
// increasing zxids.
func (j *Journal) Append(e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if e.Zxid <= j.lastZxid {
		return fmt.Errorf("transaction [%d] has already been journaled", e.Zxid)
	}
	j.entries = append(j.entries, e)
	if j.capacity > 0 && len(j.entries) > j.capacity {
		j.entries = j.entries[len(j.entries)-j.capacity:]
	}
	j.lastZxid = e.Zxid
	return nil
}

// Entries returns a copy of the recorded entries in application order.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len returns the number of entries currently retained.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

// LastZxid returns the id of the most recently appended entry, or zero if
// nothing has been journaled.
func (j *Journal) LastZxid() zxid.ZXID {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.lastZxid
}
