package core

import (
	"reflect"
	"testing"
)

func TestCloneRecord_DeepCopy(t *testing.T) {
	orig := Record{
		"title":  "post",
		"nested": map[string]any{"n": 1.0},
		"list":   []any{"a", map[string]any{"b": true}},
	}
	cp := CloneRecord(orig)

	cp["title"] = "changed"
	cp["nested"].(map[string]any)["n"] = 2.0
	cp["list"].([]any)[1].(map[string]any)["b"] = false

	if orig["title"] != "post" {
		t.Fatalf("top-level value leaked: %v", orig["title"])
	}
	if orig["nested"].(map[string]any)["n"] != 1.0 {
		t.Fatalf("nested map leaked: %v", orig["nested"])
	}
	if orig["list"].([]any)[1].(map[string]any)["b"] != true {
		t.Fatalf("nested slice leaked: %v", orig["list"])
	}
}

func TestCloneRecord_Nil(t *testing.T) {
	cp := CloneRecord(nil)
	if cp == nil || len(cp) != 0 {
		t.Fatalf("expected empty non-nil record, got %#v", cp)
	}
}

func TestCloneRecord_TypedContainers(t *testing.T) {
	n := 5
	orig := Record{
		"labels": map[string]string{"env": "prod"},
		"nums":   []int{1, 2},
		"recs":   []Record{{"n": "orig"}},
		"grid":   [2][]float64{{1}, {2}},
		"ptr":    &n,
		"nilmap": map[string]int(nil),
	}
	want := Record{
		"labels": map[string]string{"env": "prod"},
		"nums":   []int{1, 2},
		"recs":   []Record{{"n": "orig"}},
		"grid":   [2][]float64{{1}, {2}},
		"nilmap": map[string]int(nil),
	}
	cp := CloneRecord(orig)

	orig["labels"].(map[string]string)["env"] = "dev"
	orig["nums"].([]int)[0] = 99
	orig["recs"].([]Record)[0]["n"] = "mutated"
	orig["grid"].([2][]float64)[0][0] = 42
	*orig["ptr"].(*int) = 6

	if *cp["ptr"].(*int) != 5 {
		t.Fatalf("pointer aliased: %v", *cp["ptr"].(*int))
	}
	delete(cp, "ptr")
	if !reflect.DeepEqual(want, cp) {
		t.Fatalf("typed containers aliased:\nwant %#v\ngot  %#v", want, cp)
	}
}
