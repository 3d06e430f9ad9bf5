package dataset

import (
	"context"
	"fmt"
	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// DefaultURL is the location of the public headerless SMS spam collection.
const DefaultURL = "https://raw.githubusercontent.com/PacktPublishing/Hands-On-Artificial-Intelligence-for-Cybersecurity/master/Chapter03/datasets/sms_spam_no_header.csv"

// DownloadError is returned when a dataset could not be fetched.
type DownloadError struct {
	URL    string
	Status int
	Err    error
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("downloading %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("downloading %s: unexpected status %d", e.URL, e.Status)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Download fetches url into path, creating parent directories as needed. The file is written to a
// temporary name first so an interrupted download never leaves a truncated dataset behind.
func Download(ctx context.Context, url, path string, progress bool) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &DownloadError{URL: url, Err: err}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return &DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &DownloadError{URL: url, Status: resp.StatusCode}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating dataset directory")
	}
	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrap(err, "creating dataset file")
	}

	var body io.Reader = resp.Body
	if progress {
		bar := pb.Full.Start64(resp.ContentLength)
		body = bar.NewProxyReader(resp.Body)
		defer bar.Finish()
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(tmp)
		return &DownloadError{URL: url, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "writing dataset file")
	}
	return os.Rename(tmp, path)
}

// Ensure downloads url to path when no file exists there yet.
func Ensure(ctx context.Context, url, path string, progress bool) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "checking dataset %s", path)
	}
	return Download(ctx, url, path, progress)
}
