// Package label maps raw dataset labels onto the two canonical classes, ham (0) and spam (1).
package label

import (
	"fmt"
	"github.com/xtgo/set"
	"sort"
	"strings"
)

const (
	// Ham is the canonical class of legitimate messages.
	Ham = 0
	// Spam is the canonical class of unsolicited messages.
	Spam = 1
)

// Names are the display names of the canonical classes, indexed by class.
var Names = [2]string{"ham", "spam"}

// Map records which raw (normalised) label was assigned to which class.
type Map map[string]int

// LabelError is returned when labels cannot be mapped onto two classes.
type LabelError struct {
	Distinct []string
}

func (e *LabelError) Error() string {
	if len(e.Distinct) < 2 {
		return fmt.Sprintf("need two distinct labels, found %d %q", len(e.Distinct), e.Distinct)
	}
	return fmt.Sprintf("need exactly two distinct labels, found %d %q", len(e.Distinct), e.Distinct)
}

// Name returns the display name of a class.
func Name(class int) string {
	if class == Spam {
		return Names[Spam]
	}
	return Names[Ham]
}

// Clean lowercases and trims a raw label.
func Clean(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Normalise encodes raw labels as classes. Labels are cleaned first; ham/spam and 0/1 are mapped
// directly, otherwise the most frequent label becomes class 0 and the second most frequent class 1,
// with ties going to whichever label appears first.
func Normalise(raw []string) ([]int, Map, error) {
	cleaned := make([]string, len(raw))
	for i, r := range raw {
		cleaned[i] = Clean(r)
	}

	distinct := set.Strings(append([]string(nil), cleaned...))
	if len(distinct) < 2 {
		return nil, nil, &LabelError{Distinct: distinct}
	}

	var m Map
	switch {
	case subset(distinct, "ham", "spam"):
		m = Map{"ham": Ham, "spam": Spam}
	case subset(distinct, "0", "1"):
		m = Map{"0": Ham, "1": Spam}
	default:
		if len(distinct) > 2 {
			return nil, nil, &LabelError{Distinct: distinct}
		}
		m = byFrequency(cleaned)
	}

	classes := make([]int, len(cleaned))
	for i, c := range cleaned {
		classes[i] = m[c]
	}
	return classes, m, nil
}

// subset reports whether the sorted distinct labels are all in allowed.
func subset(distinct []string, allowed ...string) bool {
	s := append(make([]string, 0, len(distinct)+len(allowed)), distinct...)
	return set.StringsChk(set.IsSub, s, set.Strings(allowed)...)
}

func byFrequency(labels []string) Map {
	counts := make(map[string]int)
	var order []string
	for _, l := range labels {
		if _, ok := counts[l]; !ok {
			order = append(order, l)
		}
		counts[l]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return Map{order[0]: Ham, order[1]: Spam}
}

// Labels returns the raw labels that were mapped to each class.
func (m Map) Labels() [2][]string {
	var l [2][]string
	for k, v := range m {
		l[v] = append(l[v], k)
	}
	sort.Strings(l[0])
	sort.Strings(l[1])
	return l
}
