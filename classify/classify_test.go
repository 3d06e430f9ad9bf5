package classify_test

import (
	"github.com/textclf/spamsvm/artifact"
	"github.com/textclf/spamsvm/classify"
	"github.com/textclf/spamsvm/features"
	"io"
	"math"
	"testing"
)

// spyModel predicts spam for anything containing the first vocabulary term and counts calls.
type spyModel struct {
	calls int
	panic bool
	// broken panics on every call, like weights that do not match the vocabulary.
	broken bool
}

func (m *spyModel) Fit(features.Matrix, []int) error { return nil }
func (m *spyModel) Output(io.Writer) error            { return nil }

func (m *spyModel) Decision(x features.Vector) float64 {
	m.calls++
	if m.panic {
		panic("dimension mismatch")
	}
	if len(x.Indices) > 0 && x.Indices[0] == 0 {
		return 3
	}
	return -0.5
}

func (m *spyModel) Predict(x features.Vector) int {
	if m.broken {
		_ = x.Dot(nil)
	}
	if len(x.Indices) > 0 && x.Indices[0] == 0 {
		return 1
	}
	return 0
}

func classifier(t *testing.T, m *spyModel, cache int) *classify.Classifier {
	v, err := features.NewTfidfVectoriser(features.Options{MinDF: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Fit([]string{"aaprize", "hello"}); err != nil {
		t.Fatal(err)
	}
	c, err := classify.New(&artifact.Bundle{Vectoriser: v}, cache)
	if err != nil {
		t.Fatal(err)
	}
	c.Model = m
	return c
}

func TestClassify(t *testing.T) {
	m := &spyModel{}
	c := classifier(t, m, 0)

	r := c.Classify("aaprize")
	if r.Prediction == nil || r.Prediction.Label != "spam" || r.Prediction.Class != 1 {
		t.Fatalf("expected spam, got %+v", r)
	}
	if *r.Prediction.Margin != 3 || *r.Prediction.Confidence != 1 {
		t.Fatalf("unexpected margin %v and confidence %v", *r.Prediction.Margin, *r.Prediction.Confidence)
	}

	r = c.Classify("hello")
	if r.Prediction.Label != "ham" || *r.Prediction.Confidence != 0.25 {
		t.Fatalf("expected ham with confidence 0.25, got %+v", r.Prediction)
	}
}

func TestClassifyBlankNeverReachesModel(t *testing.T) {
	m := &spyModel{}
	c := classifier(t, m, 0)
	for _, text := range []string{"", " ", "\t\n"} {
		if r := c.Classify(text); r.Warning != classify.EmptyInputWarning || r.Prediction != nil {
			t.Fatalf("%q: expected a warning, got %+v", text, r)
		}
	}
	if m.calls != 0 {
		t.Fatalf("model was called %d times", m.calls)
	}
}

func TestClassifyMarginFailure(t *testing.T) {
	c := classifier(t, &spyModel{panic: true}, 0)
	r := c.Classify("aaprize")
	if r.Prediction == nil || r.Prediction.Label != "spam" {
		t.Fatalf("expected a label despite the margin failure, got %+v", r)
	}
	if r.Prediction.Margin != nil || r.Prediction.Confidence != nil {
		t.Fatal("margin and confidence should be absent")
	}
}

func TestClassifyModelFailure(t *testing.T) {
	c := classifier(t, &spyModel{panic: true, broken: true}, 0)
	r := c.Classify("aaprize")
	if r.Prediction != nil || len(r.Warning) == 0 {
		t.Fatalf("expected a warning instead of a prediction, got %+v", r)
	}
	if r = c.Classify("   "); r.Warning != classify.EmptyInputWarning {
		t.Fatalf("classifier should keep working after a failure, got %+v", r)
	}
}

func TestClassifyCache(t *testing.T) {
	m := &spyModel{}
	c := classifier(t, m, 8)
	for i := 0; i < 3; i++ {
		c.Classify("aaprize")
	}
	if m.calls != 1 {
		t.Fatalf("expected a single model call, got %d", m.calls)
	}
}

func TestConfidence(t *testing.T) {
	for margin, want := range map[float64]float64{0: 0, 1: 0.5, -1: 0.5, 2: 1, -7: 1} {
		if got := classify.Confidence(margin); math.Abs(got-want) > 1e-12 {
			t.Fatalf("Confidence(%v) = %v, want %v", margin, got, want)
		}
	}

	c := classifier(t, &spyModel{}, 0)
	c.Confidence = func(float64) float64 { return 0.42 }
	if r := c.Classify("hello"); *r.Prediction.Confidence != 0.42 {
		t.Fatalf("custom confidence was not used: %v", *r.Prediction.Confidence)
	}
}
