package mirror_test

import (
	"testing"

	"github.com/jekaa-labs/nestedmvcc/mirror"
)

func TestInMemoryMirror_ApplyAndLoadAll(t *testing.T) {
	m := mirror.NewInMemoryMirror()

	if err := m.Apply(map[string]string{"a": "1"}, nil); err != nil {
		t.Fatalf("apply: %v", err)
	}
	rows, err := m.LoadAll()
	if err != nil {
		t.Fatalf("load_all: %v", err)
	}
	if rows["a"] != "1" {
		t.Fatalf("rows = %v, want a=1", rows)
	}

	if err := m.Apply(nil, map[string]struct{}{"a": {}}); err != nil {
		t.Fatalf("apply delete: %v", err)
	}
	rows, _ = m.LoadAll()
	if _, ok := rows["a"]; ok {
		t.Fatalf("expected a deleted, rows = %v", rows)
	}
}

func TestInMemoryMirror_CloseThenApplyIsNoOp(t *testing.T) {
	m := mirror.NewInMemoryMirror()
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := m.Apply(map[string]string{"x": "y"}, nil); err != nil {
		t.Fatalf("apply after close: %v", err)
	}
	rows, _ := m.LoadAll()
	if len(rows) != 0 {
		t.Fatalf("expected no rows after closed apply, got %v", rows)
	}
}
