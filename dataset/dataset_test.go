package dataset_test

import (
	"context"
	"fmt"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/textclf/spamsvm/dataset"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadHeaderless(t *testing.T) {
	in := "ham,Go until jurong point\nspam,\"Free entry, win a prize\"\nham,   \nspam,Call now \n"
	records, err := dataset.Read(strings.NewReader(in), "sms.csv")
	if err != nil {
		t.Fatal(err)
	}
	want := []dataset.Record{
		{Label: "ham", Text: "Go until jurong point"},
		{Label: "spam", Text: "Free entry, win a prize"},
		{Label: "spam", Text: "Call now"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestReadHeaderlessShortRows(t *testing.T) {
	for _, in := range []string{
		"ham,Go until jurong point\nspam,Free entry win a prize\nham\nspam,Call now\n",
		"ham,Go until jurong point\nspam\nspam,Free entry win a prize\nspam,Call now",
	} {
		records, err := dataset.Read(strings.NewReader(in), "sms.csv")
		if err != nil {
			t.Fatal(err)
		}
		want := []dataset.Record{
			{Label: "ham", Text: "Go until jurong point"},
			{Label: "spam", Text: "Free entry win a prize"},
			{Label: "spam", Text: "Call now"},
		}
		if diff := cmp.Diff(want, records); diff != "" {
			t.Fatalf("a short row dropped more than itself (-want +got):\n%s", diff)
		}
	}

	// A labelled header is still recognised when a data row is short.
	records, err := dataset.Read(strings.NewReader("Label,Text\nham,hi\nspam\n"), "sms.csv")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]dataset.Record{{Label: "ham", Text: "hi"}}, records); diff != "" {
		t.Fatal(diff)
	}
}

func TestReadHeader(t *testing.T) {
	in := "\uFEFFid,Text,Label\n1,hello there,ham\n2,win cash,spam\n3,,ham\n"
	records, err := dataset.Read(strings.NewReader(in), "sms.csv")
	if err != nil {
		t.Fatal(err)
	}
	want := []dataset.Record{
		{Label: "ham", Text: "hello there"},
		{Label: "spam", Text: "win cash"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestReadHeaderPositional(t *testing.T) {
	in := "label,text\nham,hi\nspam,prize\n"
	records, err := dataset.Read(strings.NewReader(in), "sms.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0].Label != "ham" {
		t.Fatalf("unexpected records %v", records)
	}

	in = "class,message\nham,hi\nspam,prize,extra\n"
	records, err = dataset.Read(strings.NewReader(in), "sms.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[1].Text != "prize" {
		t.Fatalf("unexpected records %v", records)
	}
}

func TestReadSchemaError(t *testing.T) {
	in := "a,b,c\n1,2,3\n"
	_, err := dataset.Read(strings.NewReader(in), "bad.csv")
	var schemaErr *dataset.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected a schema error, got %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, schemaErr.Columns); diff != "" {
		t.Fatal(diff)
	}
}

func TestLoadNoEmptyRecords(t *testing.T) {
	records, err := dataset.Load("testdata/sms.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) == 0 {
		t.Fatal("expected records")
	}
	for _, r := range records {
		if len(strings.TrimSpace(r.Text)) == 0 || len(r.Label) == 0 {
			t.Fatalf("empty record %v", r)
		}
	}
	t.Log(len(records))
}

func TestEnsure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, "ham,hello\nspam,win\n")
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "dataset", "sms.csv")
	for i := 0; i < 2; i++ {
		if err := dataset.Ensure(context.Background(), srv.URL, path, false); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one request, got %d", calls)
	}
	records, err := dataset.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestDownloadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "x.csv")
	err := dataset.Download(context.Background(), srv.URL, path, false)
	var downloadErr *dataset.DownloadError
	if !errors.As(err, &downloadErr) || downloadErr.Status != http.StatusNotFound {
		t.Fatalf("expected a 404 download error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("no file should be written")
	}
}
