// Package activity keeps a bounded, in-memory feed of recent debt events.
//
// The feed is a UI convenience, not a ledger of record: it lives only as long
// as the process and is capped at a fixed number of entries.
package activity

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

const (
	// DefaultCapacity is the number of entries kept when none is configured.
	DefaultCapacity = 50

	// DefaultLimit is the page size used by callers that do not pass one.
	DefaultLimit = 10

	// TimestampFormat is ISO-8601 in UTC with millisecond precision.
	TimestampFormat = "2006-01-02T15:04:05.000Z07:00"
)

// Type is the kind of event recorded in the feed.
type Type string

const (
	TypePayment Type = "payment"
	TypeNewDebt Type = "new_debt"
	TypeSettled Type = "settled"
)

// Valid reports whether t is a known activity type.
func (t Type) Valid() bool {
	switch t {
	case TypePayment, TypeNewDebt, TypeSettled:
		return true
	}
	return false
}

// Entry is the caller-supplied part of an activity.
type Entry struct {
	Type        Type
	From        string
	FromName    string
	To          string
	ToName      string
	Amount      decimal.Decimal
	Description string
}

// DebtActivity is an Entry stamped with an ID and creation time.
type DebtActivity struct {
	ID        string
	Timestamp string
	Entry
}

// Log is a fixed-capacity ring of activities, newest first.
// It is safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	entries []DebtActivity
	head    int // index of the newest entry
	size    int
	entropy io.Reader
	now     func() time.Time
}

// NewLog creates an empty log holding at most capacity entries.
// A non-positive capacity selects DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		entries: make([]DebtActivity, capacity),
		head:    -1,
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Capacity returns the maximum number of entries kept.
func (l *Log) Capacity() int {
	return len(l.entries)
}

// Add records e as the newest activity, evicting the oldest one when the
// log is full, and returns the stored activity.
func (l *Log) Add(e Entry) DebtActivity {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	act := DebtActivity{
		ID:        "act_" + ulid.MustNew(ulid.Timestamp(now), l.entropy).String(),
		Timestamp: now.UTC().Format(TimestampFormat),
		Entry:     e,
	}

	l.head = (l.head + 1) % len(l.entries)
	l.entries[l.head] = act
	if l.size < len(l.entries) {
		l.size++
	}

	return act
}

// Recent returns up to limit activities, newest first.
func (l *Log) Recent(limit int) []DebtActivity {
	return l.collect(limit, func(DebtActivity) bool { return true })
}

// ForUser returns up to limit activities in which userID is the payer or
// the payee, newest first.
func (l *Log) ForUser(userID string, limit int) []DebtActivity {
	return l.collect(limit, func(a DebtActivity) bool {
		return a.From == userID || a.To == userID
	})
}

// Clear drops every activity.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	clear(l.entries)
	l.head = -1
	l.size = 0
}

// Len returns the number of activities currently held.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

func (l *Log) collect(limit int, keep func(DebtActivity) bool) []DebtActivity {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []DebtActivity{}
	for i := 0; i < l.size && len(out) < limit; i++ {
		idx := (l.head - i + len(l.entries)) % len(l.entries)
		if a := l.entries[idx]; keep(a) {
			out = append(out, a)
		}
	}
	return out
}
