package utility

import (
	"reflect"
	"testing"
)

func TestContains(t *testing.T) {
	if !Contains([]string{"a", "b"}, "b") {
		t.Error("Contains should find b")
	}
	if Contains([]string{"a", "b"}, "c") {
		t.Error("Contains should not find c")
	}
	if Contains(nil, "a") {
		t.Error("Contains on nil slice should be false")
	}
	if !Contains([]int{1, 2, 3}, 2) {
		t.Error("Contains should work for ints")
	}
}

func TestUniqueSortedStrings(t *testing.T) {
	got := UniqueSortedStrings([]string{"第二工場", "", "第一工場", "第二工場", ""})
	want := []string{"第一工場", "第二工場"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UniqueSortedStrings = %v, want %v", got, want)
	}

	if got := UniqueSortedStrings(nil); len(got) != 0 {
		t.Errorf("nil input: got %v, want empty", got)
	}
}
