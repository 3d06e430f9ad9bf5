package artifact_test

import (
	"bytes"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"github.com/textclf/spamsvm/artifact"
	"github.com/textclf/spamsvm/eval"
	"github.com/textclf/spamsvm/features"
	"github.com/textclf/spamsvm/label"
	"github.com/textclf/spamsvm/learning"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var (
	texts = []string{
		"win a free prize now",
		"claim your free prize",
		"free prize draw, claim now",
		"meeting moved to tomorrow",
		"see you at the meeting tomorrow",
		"lunch tomorrow?",
	}
	classes = []int{1, 1, 1, 0, 0, 0}
)

func bundle(t *testing.T) artifact.Bundle {
	v, err := features.NewTfidfVectoriser(features.DefaultOptions)
	if err != nil {
		t.Fatal(err)
	}
	x, err := v.FitTransform(texts)
	if err != nil {
		t.Fatal(err)
	}
	m := learning.NewLinearSVC(learning.DefaultSVMParams)
	if err := m.Fit(x, classes); err != nil {
		t.Fatal(err)
	}
	predicted := learning.PredictAll(m, x)

	metrics := artifact.Metrics{
		ClassificationReport: eval.NewReport(classes, predicted, label.Names),
		LabelMap:             label.Map{"ham": 0, "spam": 1},
		Seed:                 42,
		TestSize:             0.2,
		ConfusionMatrix:      eval.NewConfusionMatrix(classes, predicted),
		RunID:                "test",
		Created:              time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	scores, err := eval.Evaluate(eval.Measures, classes, predicted)
	if err != nil {
		t.Fatal(err)
	}
	metrics.SetScores(scores)

	var img bytes.Buffer
	if err := png.Encode(&img, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	return artifact.Bundle{Vectoriser: v, Model: m, Metrics: metrics, ConfusionMatrix: img.Bytes()}
}

func TestLoadMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := artifact.NewStore(dir).Load()
	var missing *artifact.ArtifactMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected a missing artifact error, got %v", err)
	}
	if diff := cmp.Diff(artifact.Files, missing.Files); diff != "" {
		t.Fatal(diff)
	}
	if missing.Dir != dir {
		t.Fatalf("unexpected directory %s", missing.Dir)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	b := bundle(t)
	if err := artifact.NewStore(dir).Save(b); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var written []string
	for _, e := range entries {
		written = append(written, e.Name())
	}
	if diff := cmp.Diff(artifact.Files, written, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("artifact directory layout (-want +got):\n%s", diff)
	}

	store := artifact.NewStore(dir)
	if !store.Complete() {
		t.Fatalf("store is missing %v", store.Missing())
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(b.Metrics, loaded.Metrics); diff != "" {
		t.Fatalf("metrics mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(b.Model, loaded.Model); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
	for _, text := range texts {
		want, _ := b.Vectoriser.Vector(text)
		got, err := loaded.Vectoriser.Vector(text)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%q vectorised differently after reload:\n%s", text, diff)
		}
	}
}

func TestLoadCorrupt(t *testing.T) {
	for _, c := range []struct {
		file    string
		content string
	}{
		{artifact.ModelFile, "{not json"},
		{artifact.ModelFile, `{"weights":[1,2]}`},
		{artifact.VectorizerFile, `{"vocabulary":[]}`},
		{artifact.MetricsFile, "[]"},
		{artifact.ConfusionMatrixFile, "not a png"},
	} {
		dir := t.TempDir()
		if err := artifact.NewStore(dir).Save(bundle(t)); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, c.file), []byte(c.content), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := artifact.NewStore(dir).Load()
		var corrupt *artifact.ArtifactCorruptError
		if !errors.As(err, &corrupt) {
			t.Fatalf("%s %q: expected a corrupt artifact error, got %v", c.file, c.content, err)
		}
		if corrupt.File != c.file {
			t.Fatalf("expected %s to be reported, got %s", c.file, corrupt.File)
		}
	}
}
