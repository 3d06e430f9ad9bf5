// Package artifact persists and restores everything a training run produces.
package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
	"github.com/textclf/spamsvm/features"
	"github.com/textclf/spamsvm/learning"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ModelFile holds the classifier weights.
	ModelFile = "model.json"
	// VectorizerFile holds the vocabulary and idf weights.
	VectorizerFile = "vectorizer.json"
	// MetricsFile holds the evaluation record.
	MetricsFile = "metrics.json"
	// ConfusionMatrixFile holds the rendered confusion matrix.
	ConfusionMatrixFile = "confusion_matrix.png"
)

// Files are the files of a complete artifact directory.
var Files = []string{ModelFile, VectorizerFile, MetricsFile, ConfusionMatrixFile}

// ArtifactMissingError is returned when an artifact directory is incomplete.
type ArtifactMissingError struct {
	Dir   string
	Files []string
}

func (e *ArtifactMissingError) Error() string {
	return fmt.Sprintf("artifacts missing from %s: %s; run training first", e.Dir, strings.Join(e.Files, ", "))
}

// ArtifactCorruptError is returned when an artifact exists but cannot be decoded.
type ArtifactCorruptError struct {
	File string
	Err  error
}

func (e *ArtifactCorruptError) Error() string {
	return fmt.Sprintf("corrupt artifact %s: %v", e.File, e.Err)
}

func (e *ArtifactCorruptError) Unwrap() error {
	return e.Err
}

// Bundle is the output of a training run.
type Bundle struct {
	Vectoriser      *features.TfidfVectoriser
	Model           *learning.LinearSVC
	Metrics         Metrics
	ConfusionMatrix []byte
}

// Store reads and writes a bundle in a flat directory. Each file is replaced atomically, but a
// bundle is not written as a single transaction.
type Store struct {
	Dir string
	d   *diskv.Diskv
	tmp string
}

// NewStore creates a store rooted at dir. The directory is created on the first write.
func NewStore(dir string) *Store {
	tmp := filepath.Join(dir, ".tmp")
	return &Store{
		Dir: dir,
		tmp: tmp,
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			TempDir:      tmp,
			CacheSizeMax: 8 * 1024 * 1024,
			FilePerm:     0644,
			PathPerm:     0755,
		}),
	}
}

// Save writes every file of the bundle. The staging directory used for atomic writes is removed
// afterwards, leaving only the artifact files.
func (s *Store) Save(b Bundle) error {
	defer os.Remove(s.tmp)

	var buf bytes.Buffer
	if err := b.Model.Output(&buf); err != nil {
		return errors.Wrap(err, "encoding model")
	}
	if err := s.d.Write(ModelFile, buf.Bytes()); err != nil {
		return errors.Wrapf(err, "writing %s", ModelFile)
	}

	buf.Reset()
	if err := b.Vectoriser.Encode(&buf); err != nil {
		return errors.Wrap(err, "encoding vectoriser")
	}
	if err := s.d.Write(VectorizerFile, buf.Bytes()); err != nil {
		return errors.Wrapf(err, "writing %s", VectorizerFile)
	}

	m, err := json.MarshalIndent(b.Metrics, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding metrics")
	}
	if err := s.d.Write(MetricsFile, m); err != nil {
		return errors.Wrapf(err, "writing %s", MetricsFile)
	}

	if err := s.d.Write(ConfusionMatrixFile, b.ConfusionMatrix); err != nil {
		return errors.Wrapf(err, "writing %s", ConfusionMatrixFile)
	}
	return nil
}

// Missing lists the artifact files that do not exist.
func (s *Store) Missing() []string {
	var missing []string
	for _, f := range Files {
		if !s.d.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every artifact file exists.
func (s *Store) Complete() bool {
	return len(s.Missing()) == 0
}

// Load reads and validates a complete bundle.
func (s *Store) Load() (*Bundle, error) {
	if missing := s.Missing(); len(missing) > 0 {
		return nil, &ArtifactMissingError{Dir: s.Dir, Files: missing}
	}

	b, err := s.d.Read(VectorizerFile)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", VectorizerFile)
	}
	v, err := features.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, &ArtifactCorruptError{File: VectorizerFile, Err: err}
	}

	b, err = s.d.Read(ModelFile)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", ModelFile)
	}
	model, err := learning.ReadLinearSVC(bytes.NewReader(b))
	if err != nil {
		return nil, &ArtifactCorruptError{File: ModelFile, Err: err}
	}
	if len(model.Weights) != v.Len() {
		return nil, &ArtifactCorruptError{
			File: ModelFile,
			Err:  errors.Errorf("model has %d weights but the vocabulary has %d terms", len(model.Weights), v.Len()),
		}
	}

	metrics, err := s.Metrics()
	if err != nil {
		return nil, err
	}
	cm, err := s.ConfusionMatrix()
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Vectoriser:      v,
		Model:           model,
		Metrics:         metrics,
		ConfusionMatrix: cm,
	}, nil
}

// Metrics reads the evaluation record.
func (s *Store) Metrics() (Metrics, error) {
	var m Metrics
	b, err := s.d.Read(MetricsFile)
	if err != nil {
		if !s.d.Has(MetricsFile) {
			return m, &ArtifactMissingError{Dir: s.Dir, Files: []string{MetricsFile}}
		}
		return m, errors.Wrapf(err, "reading %s", MetricsFile)
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return m, &ArtifactCorruptError{File: MetricsFile, Err: err}
	}
	return m, nil
}

// ConfusionMatrix reads the rendered confusion matrix image.
func (s *Store) ConfusionMatrix() ([]byte, error) {
	b, err := s.d.Read(ConfusionMatrixFile)
	if err != nil {
		if !s.d.Has(ConfusionMatrixFile) {
			return nil, &ArtifactMissingError{Dir: s.Dir, Files: []string{ConfusionMatrixFile}}
		}
		return nil, errors.Wrapf(err, "reading %s", ConfusionMatrixFile)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(b)); err != nil {
		return nil, &ArtifactCorruptError{File: ConfusionMatrixFile, Err: err}
	}
	return b, nil
}
