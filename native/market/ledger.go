package market

import (
	"errors"
	"fmt"
	"strings"

	"swapmarket/storage"
)

// Ledger persists swap records in the underlying key-value store, keyed by
// the caller-chosen swap id. Enumeration follows ascending key order, which
// every filtered query builds on.
type Ledger struct {
	db storage.Database
}

// NewLedger constructs a ledger bound to the provided storage backend.
func NewLedger(db storage.Database) *Ledger {
	return &Ledger{db: db}
}

// Insert stores a new record, failing if the id is already taken. Records are
// unmodifiable through Insert; lifecycle mutations go through Replace.
func (l *Ledger) Insert(record *SwapRecord) error {
	if l == nil || l.db == nil {
		return errNilState
	}
	sanitized, err := SanitizeRecord(record)
	if err != nil {
		return err
	}
	key := swapKey(sanitized.ID)
	exists, err := l.db.Has(key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: id %s", ErrAlreadyExists, sanitized.ID)
	}
	encoded, err := encodeSwapRecord(sanitized)
	if err != nil {
		return err
	}
	return l.db.Put(key, encoded)
}

// Get retrieves a record by id.
func (l *Ledger) Get(id string) (*SwapRecord, error) {
	if l == nil || l.db == nil {
		return nil, errNilState
	}
	raw, err := l.db.Get(swapKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrNotFound, strings.TrimSpace(id))
		}
		return nil, err
	}
	return decodeSwapRecord(raw)
}

// Replace overwrites the record under its id in a single upsert. A lifecycle
// update must never be expressed as delete-then-insert: the single put keeps
// the ledger from ever observing a deleted-but-not-replaced record.
func (l *Ledger) Replace(record *SwapRecord) error {
	if l == nil || l.db == nil {
		return errNilState
	}
	sanitized, err := SanitizeRecord(record)
	if err != nil {
		return err
	}
	encoded, err := encodeSwapRecord(sanitized)
	if err != nil {
		return err
	}
	return l.db.Put(swapKey(sanitized.ID), encoded)
}

// Delete removes the record under the given id. Deleting an absent id is a
// no-op.
func (l *Ledger) Delete(id string) error {
	if l == nil || l.db == nil {
		return errNilState
	}
	return l.db.Delete(swapKey(id))
}

// Scan walks all records in ascending key order, invoking fn for each. The
// walk stops early when fn returns false or an error.
func (l *Ledger) Scan(fn func(id string, record *SwapRecord) (bool, error)) error {
	if l == nil || l.db == nil {
		return errNilState
	}
	it := l.db.NewIterator(swapRecordPrefix)
	defer it.Release()
	for it.Next() {
		record, err := decodeSwapRecord(it.Value())
		if err != nil {
			return err
		}
		cont, err := fn(swapIDFromKey(it.Key()), record)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	return nil
}

// All returns every record in ascending key order.
func (l *Ledger) All() ([]*SwapRecord, error) {
	var records []*SwapRecord
	err := l.Scan(func(_ string, record *SwapRecord) (bool, error) {
		records = append(records, record)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Keys enumerates swap ids in ascending order, starting after the exclusive
// cursor. This is the mechanism for walking the whole ledger without page
// math.
func (l *Ledger) Keys(startAfter string, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	ids := make([]string, 0, limit)
	cursor := strings.TrimSpace(startAfter)
	err := l.Scan(func(id string, _ *SwapRecord) (bool, error) {
		if cursor != "" && id <= cursor {
			return true, nil
		}
		ids = append(ids, id)
		return len(ids) < limit, nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
