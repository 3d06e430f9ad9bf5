package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/textclf/spamsvm/artifact"
	"github.com/textclf/spamsvm/classify"
	"github.com/textclf/spamsvm/eval"
	"github.com/textclf/spamsvm/features"
	"github.com/textclf/spamsvm/label"
	"github.com/textclf/spamsvm/learning"
	"github.com/textclf/spamsvm/output"
	"github.com/textclf/spamsvm/server"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func trained(t *testing.T) *artifact.Store {
	texts := []string{
		"win a free prize, claim now",
		"free prize waiting, claim today",
		"claim your free cash prize",
		"see you at lunch tomorrow",
		"lunch tomorrow at noon?",
		"running late, see you soon",
	}
	y := []int{1, 1, 1, 0, 0, 0}
	v, err := features.NewTfidfVectoriser(features.DefaultOptions)
	if err != nil {
		t.Fatal(err)
	}
	x, err := v.FitTransform(texts)
	if err != nil {
		t.Fatal(err)
	}
	m := learning.NewLinearSVC(learning.DefaultSVMParams)
	if err := m.Fit(x, y); err != nil {
		t.Fatal(err)
	}
	predicted := learning.PredictAll(m, x)
	metrics := artifact.Metrics{
		ClassificationReport: eval.NewReport(y, predicted, label.Names),
		ConfusionMatrix:      eval.NewConfusionMatrix(y, predicted),
	}
	scores, err := eval.Evaluate(eval.Measures, y, predicted)
	if err != nil {
		t.Fatal(err)
	}
	metrics.SetScores(scores)
	img, err := output.ConfusionMatrixPNG(metrics.ConfusionMatrix, label.Names)
	if err != nil {
		t.Fatal(err)
	}
	store := artifact.NewStore(t.TempDir())
	if err := store.Save(artifact.Bundle{Vectoriser: v, Model: m, Metrics: metrics, ConfusionMatrix: img}); err != nil {
		t.Fatal(err)
	}
	return store
}

func do(h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var b bytes.Buffer
	if body != nil {
		json.NewEncoder(&b).Encode(body)
	}
	req := httptest.NewRequest(method, path, &b)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestClassify(t *testing.T) {
	store := trained(t)
	clf, err := classify.Load(store, 16)
	if err != nil {
		t.Fatal(err)
	}
	h := server.NewServer(clf, nil, store, zap.NewNop()).Handler()

	w := do(h, http.MethodPost, "/api/v1/classify", server.ClassifyRequest{Text: "claim your free prize"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	var r classify.Result
	if err := json.Unmarshal(w.Body.Bytes(), &r); err != nil {
		t.Fatal(err)
	}
	if r.Prediction == nil || r.Prediction.Label != "spam" || r.Prediction.Margin == nil {
		t.Fatalf("unexpected result %s", w.Body)
	}

	w = do(h, http.MethodPost, "/api/v1/classify", server.ClassifyRequest{Text: "  "})
	r = classify.Result{}
	if err := json.Unmarshal(w.Body.Bytes(), &r); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusOK || r.Warning != classify.EmptyInputWarning || r.Prediction != nil {
		t.Fatalf("expected a warning, got %d: %s", w.Code, w.Body)
	}

	w = do(h, http.MethodPost, "/api/v1/classify/batch", server.BatchRequest{Texts: classify.Examples})
	var batch struct {
		Results []classify.Result `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &batch); err != nil {
		t.Fatal(err)
	}
	if len(batch.Results) != len(classify.Examples) {
		t.Fatalf("expected %d results, got %s", len(classify.Examples), w.Body)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/classify", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed body, got %d", rec.Code)
	}
}

func TestArtifacts(t *testing.T) {
	store := trained(t)
	clf, err := classify.Load(store, 0)
	if err != nil {
		t.Fatal(err)
	}
	h := server.NewServer(clf, nil, store, zap.NewNop()).Handler()

	w := do(h, http.MethodGet, "/api/v1/metrics", nil)
	var m map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["accuracy"]; !ok || w.Code != http.StatusOK {
		t.Fatalf("unexpected metrics %d: %s", w.Code, w.Body)
	}

	w = do(h, http.MethodGet, "/api/v1/confusion_matrix.png", nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("unexpected image response %d %s", w.Code, w.Header().Get("Content-Type"))
	}

	w = do(h, http.MethodGet, "/api/v1/examples", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected examples response %d", w.Code)
	}
}

func TestFailClosed(t *testing.T) {
	store := artifact.NewStore(t.TempDir())
	clf, err := classify.Load(store, 0)
	if err == nil {
		t.Fatal("expected a load error")
	}
	h := server.NewServer(clf, err, store, zap.NewNop()).Handler()

	w := do(h, http.MethodPost, "/api/v1/classify", server.ClassifyRequest{Text: "hello"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	w = do(h, http.MethodGet, "/api/v1/metrics", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	w = do(h, http.MethodGet, "/health", nil)
	var health map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatal(err)
	}
	if health["ready"] != false || health["error"] == nil {
		t.Fatalf("unexpected health %s", w.Body)
	}
}
