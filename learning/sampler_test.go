package learning_test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/textclf/spamsvm/learning"
	"sort"
	"testing"
)

func classes(ham, spam int) []int {
	y := make([]int, 0, ham+spam)
	for i := 0; i < ham; i++ {
		y = append(y, 0)
	}
	for i := 0; i < spam; i++ {
		y = append(y, 1)
	}
	return y
}

func TestStratifiedSampler(t *testing.T) {
	y := classes(100, 100)
	split, err := learning.NewStratifiedSampler(0.2, 42).Split(y)
	if err != nil {
		t.Fatal(err)
	}
	if len(split.Test) != 40 || len(split.Train) != 160 {
		t.Fatalf("expected 160/40, got %d/%d", len(split.Train), len(split.Test))
	}
	spam := 0
	for _, i := range split.Test {
		spam += y[i]
	}
	if spam != 20 {
		t.Fatalf("expected 20 spam held out, got %d", spam)
	}

	all := append(append([]int(nil), split.Train...), split.Test...)
	sort.Ints(all)
	for i, j := range all {
		if i != j {
			t.Fatalf("split is not a partition: index %d", i)
		}
	}
}

func TestStratifiedSamplerImbalanced(t *testing.T) {
	y := classes(87, 13)
	split, err := learning.NewStratifiedSampler(0.25, 7).Split(y)
	if err != nil {
		t.Fatal(err)
	}
	spam := 0
	for _, i := range split.Test {
		spam += y[i]
	}
	// 25 held out: 21.75 ham and 3.25 spam, the larger remainder rounds ham up.
	if len(split.Test) != 25 || spam != 3 {
		t.Fatalf("expected 25 held out with 3 spam, got %d with %d", len(split.Test), spam)
	}
}

func TestStratifiedSamplerDeterministic(t *testing.T) {
	y := classes(30, 20)
	a, err := learning.NewStratifiedSampler(0.3, 1).Split(y)
	if err != nil {
		t.Fatal(err)
	}
	b, err := learning.NewStratifiedSampler(0.3, 1).Split(y)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatal(diff)
	}
	c, err := learning.NewStratifiedSampler(0.3, 2).Split(y)
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Equal(a, c) {
		t.Fatal("different seeds should shuffle differently")
	}
}

func TestStratifiedSamplerErrors(t *testing.T) {
	for _, c := range []struct {
		y        []int
		testSize float64
	}{
		{classes(10, 10), 0},
		{classes(10, 10), 1},
		{classes(10, 1), 0.2},
		{classes(2, 2), 0.9},
	} {
		if _, err := learning.NewStratifiedSampler(c.testSize, 42).Split(c.y); err == nil {
			t.Fatalf("expected an error for %d rows with test size %v", len(c.y), c.testSize)
		}
	}
}

func TestSelect(t *testing.T) {
	got := learning.Select([]string{"a", "b", "c"}, []int{2, 0})
	if diff := cmp.Diff([]string{"c", "a"}, got); diff != "" {
		t.Fatal(diff)
	}
}
