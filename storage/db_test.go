package storage

import (
	"errors"
	"testing"
)

func TestMemDBRoundTrip(t *testing.T) {
	db := NewMemDB()

	if err := db.Put([]byte("alpha"), []byte("1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	value, err := db.Get([]byte("alpha"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(value) != "1" {
		t.Fatalf("value mismatch: %q", value)
	}

	ok, err := db.Has([]byte("alpha"))
	if err != nil || !ok {
		t.Fatalf("has: %v %v", ok, err)
	}

	if _, err := db.Get([]byte("missing")); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := db.Delete([]byte("alpha")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.Get([]byte("alpha")); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestMemDBPrefixIteration(t *testing.T) {
	db := NewMemDB()
	pairs := map[string]string{
		"swap/charlie": "3",
		"swap/alpha":   "1",
		"swap/bravo":   "2",
		"other/delta":  "4",
	}
	for k, v := range pairs {
		if err := db.Put([]byte(k), []byte(v)); err != nil {
			t.Fatalf("put %s: %v", k, err)
		}
	}

	it := db.NewIterator([]byte("swap/"))
	defer it.Release()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	want := []string{"swap/alpha", "swap/bravo", "swap/charlie"}
	if len(keys) != len(want) {
		t.Fatalf("key count mismatch: %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("iteration order mismatch: got %v", keys)
		}
	}
}

func TestMemDBIteratorSnapshot(t *testing.T) {
	db := NewMemDB()
	if err := db.Put([]byte("swap/alpha"), []byte("1")); err != nil {
		t.Fatalf("put: %v", err)
	}

	it := db.NewIterator([]byte("swap/"))
	defer it.Release()

	// Writes after iterator creation must not surface mid-walk.
	if err := db.Put([]byte("swap/bravo"), []byte("2")); err != nil {
		t.Fatalf("put: %v", err)
	}

	var count int
	for it.Next() {
		count++
	}
	if count != 1 {
		t.Fatalf("expected snapshot of 1 key, saw %d", count)
	}
}

func TestLevelDBRoundTrip(t *testing.T) {
	db, err := NewLevelDB(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := db.Put([]byte("swap/alpha"), []byte("1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := db.Put([]byte("swap/bravo"), []byte("2")); err != nil {
		t.Fatalf("put: %v", err)
	}

	value, err := db.Get([]byte("swap/alpha"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(value) != "1" {
		t.Fatalf("value mismatch: %q", value)
	}

	if _, err := db.Get([]byte("missing")); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	it := db.NewIterator([]byte("swap/"))
	defer it.Release()
	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	if len(keys) != 2 || keys[0] != "swap/alpha" || keys[1] != "swap/bravo" {
		t.Fatalf("iteration mismatch: %v", keys)
	}
}
