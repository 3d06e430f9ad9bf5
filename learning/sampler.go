package learning

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Split partitions row indices into a training set and a held-out test set.
type Split struct {
	Train []int
	Test  []int
}

// Sampler partitions labeled rows for training and evaluation.
type Sampler interface {
	Split(y []int) (Split, error)
}

// StratifiedSampler holds out a fraction of rows while preserving the class proportions in both
// partitions. The same seed and labels always produce the same split.
type StratifiedSampler struct {
	testSize float64
	seed     int64
}

func (s StratifiedSampler) Split(y []int) (Split, error) {
	if s.testSize <= 0 || s.testSize >= 1 {
		return Split{}, fmt.Errorf("test size must be in (0, 1), got %v", s.testSize)
	}

	// Group row indices by class, in ascending class order.
	groups := make(map[int][]int)
	for i, c := range y {
		groups[c] = append(groups[c], i)
	}
	classes := make([]int, 0, len(groups))
	for c, members := range groups {
		if len(members) < 2 {
			return Split{}, fmt.Errorf("class %d has %d member(s); at least 2 are needed to stratify", c, len(members))
		}
		classes = append(classes, c)
	}
	sort.Ints(classes)

	n := len(y)
	nTest := int(math.Ceil(s.testSize*float64(n) - 1e-9))
	nTrain := n - nTest
	if nTest < len(classes) || nTrain < len(classes) {
		return Split{}, fmt.Errorf("%d rows cannot be split into %d train and %d test rows over %d classes", n, nTrain, nTest, len(classes))
	}

	// Allocate test rows proportionally, handing the remainder to the largest fractional parts.
	alloc := make([]int, len(classes))
	frac := make([]float64, len(classes))
	assigned := 0
	for i, c := range classes {
		exact := float64(nTest) * float64(len(groups[c])) / float64(n)
		alloc[i] = int(math.Floor(exact))
		frac[i] = exact - float64(alloc[i])
		assigned += alloc[i]
	}
	order := make([]int, len(classes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return frac[order[i]] > frac[order[j]]
	})
	for k := 0; assigned < nTest; k = (k + 1) % len(order) {
		i := order[k]
		if alloc[i] < len(groups[classes[i]]) {
			alloc[i]++
			assigned++
		}
	}

	rng := rand.New(rand.NewSource(s.seed))
	var split Split
	for i, c := range classes {
		members := append([]int(nil), groups[c]...)
		rng.Shuffle(len(members), func(a, b int) {
			members[a], members[b] = members[b], members[a]
		})
		split.Test = append(split.Test, members[:alloc[i]]...)
		split.Train = append(split.Train, members[alloc[i]:]...)
	}
	rng.Shuffle(len(split.Train), func(a, b int) {
		split.Train[a], split.Train[b] = split.Train[b], split.Train[a]
	})
	rng.Shuffle(len(split.Test), func(a, b int) {
		split.Test[a], split.Test[b] = split.Test[b], split.Test[a]
	})
	return split, nil
}

// NewStratifiedSampler creates a sampler that holds out testSize of the rows.
func NewStratifiedSampler(testSize float64, seed int64) StratifiedSampler {
	return StratifiedSampler{
		testSize: testSize,
		seed:     seed,
	}
}

// Select returns the elements of s at the given indices.
func Select[T any](s []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = s[j]
	}
	return out
}
