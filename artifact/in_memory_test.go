package artifact

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hupe1980/meshkit/core"
)

// Interface compliance (compile-time assertions)
var _ core.ArtifactStore = (*InMemoryStore)(nil)

func TestInMemoryStore_SaveGet(t *testing.T) {
	s := NewInMemoryStore()
	if err := s.Save("s1", core.Artifact{ID: "01A", Kind: "blog_post", Text: "hello"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Get("s1", "01A")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Text != "hello" || got.Kind != "blog_post" {
		t.Fatalf("unexpected artifact: %+v", got)
	}
	if _, err := s.Get("s2", "01A"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other session, got %v", err)
	}
}

func TestInMemoryStore_SaveValidation(t *testing.T) {
	s := NewInMemoryStore()
	if err := s.Save("", core.Artifact{ID: "x"}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if err := s.Save("s", core.Artifact{}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestInMemoryStore_ListAndDelete(t *testing.T) {
	s := NewInMemoryStore()
	for _, id := range []string{"01C", "01A", "01B"} {
		if err := s.Save("s1", core.Artifact{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	ids, err := s.List("s1")
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(ids) != "[01A 01B 01C]" {
		t.Fatalf("expected sorted ids, got %v", ids)
	}
	if err := s.Delete("s1", "01B"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete("s1", "01B"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if err := s.Delete("nope", "01A"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown session, got %v", err)
	}
	ids, _ = s.List("empty")
	if len(ids) != 0 {
		t.Fatalf("expected no ids, got %v", ids)
	}
}

func TestInMemoryStore_Concurrent(t *testing.T) {
	s := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Save("s", core.Artifact{ID: fmt.Sprintf("%03d", i)})
			_, _ = s.List("s")
		}(i)
	}
	wg.Wait()
	ids, _ := s.List("s")
	if len(ids) != 50 {
		t.Fatalf("expected 50 artifacts, got %d", len(ids))
	}
}
