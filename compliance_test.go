// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue_test

import (
	"archive/zip"
	"errors"
	"flag"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/creachadair/jvalue"
)

var (
	doCompliance = flag.Bool("compliance-test", false,
		"Run the JSONTestSuite compliance test")
	complianceRepo = flag.String("compliance-test-repo", "https://github.com/nst/JSONTestSuite",
		"Compliance test repository URL")

	// The suite accompanies the article "Parsing JSON is a Minefield",
	// https://seriot.ch/projects/parsing_json.html. Files named y_* must be
	// accepted and n_* must be rejected. The implementation-defined i_* cases
	// are parsed and logged but not checked.
)

// openArchive returns a reader for the suite archive, fetching and caching
// it in zipFile if it is not already present.
func openArchive(t *testing.T, zipFile string) *zip.Reader {
	t.Helper()

	if fi, err := os.Stat(zipFile); err == nil {
		zf, err := os.Open(zipFile)
		if err != nil {
			t.Fatalf("Open archive: %v", err)
		}
		t.Cleanup(func() { zf.Close() })
		zr, err := zip.NewReader(zf, fi.Size())
		if err != nil {
			t.Fatalf("Open reader: %v", err)
		}
		return zr
	} else if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Stat archive: %v", err)
	}

	fullURL := *complianceRepo + "/archive/refs/heads/master.zip"
	t.Logf("Fetching %q ...", fullURL)
	rsp, err := http.Get(fullURL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	defer rsp.Body.Close()
	if ctype := rsp.Header.Get("content-type"); ctype != "application/zip" {
		t.Fatalf("Unexpected content-type: %q", ctype)
	}

	zf, err := os.Create(zipFile)
	if err != nil {
		t.Fatalf("Create output: %v", err)
	}
	t.Cleanup(func() { zf.Close() })

	size, err := io.Copy(zf, rsp.Body)
	if err != nil {
		t.Fatalf("Write output: %v", err)
	}
	zr, err := zip.NewReader(zf, size)
	if err != nil {
		t.Fatalf("Open reader: %v", err)
	}
	return zr
}

// parseEntry reads and parses the contents of zf.
// An error from parsing is returned; errors from reading fail the test.
func parseEntry(t *testing.T, zf *zip.File) (*jvalue.Value, error) {
	t.Helper()
	rc, err := zf.Open()
	if err != nil {
		t.Fatalf("Open %q: %v", zf.Name, err)
	}
	defer rc.Close()
	return jvalue.Read(rc)
}

func TestCompliance(t *testing.T) {
	if !*doCompliance {
		t.Skip("Skipping compliance test because --compliance-test is false")
	}
	zr := openArchive(t, "json-test-suite.zip")

	var numYes, numYesErrs, numNo, numNoErrs int
	kinds := make(map[jvalue.ErrorKind]int)
	for _, f := range zr.File {
		_, tail, ok := strings.Cut(f.Name, "/test_parsing/")
		if !ok || path.Ext(tail) != ".json" {
			continue
		}
		tail = strings.TrimSuffix(tail, ".json")
		tag, _, _ := strings.Cut(tail, "_")
		switch tag {
		case "y":
			numYes++
			t.Run(tail, func(t *testing.T) {
				v, err := parseEntry(t, f)
				if err != nil {
					numYesErrs++
					t.Errorf("Unexpected error: %v", err)
					return
				}
				if !jvalue.Valid([]byte(v.JSON())) {
					t.Errorf("Rendered value is not valid: %#q", v.JSON())
				}
			})
		case "n":
			numNo++
			t.Run(tail, func(t *testing.T) {
				v, err := parseEntry(t, f)
				if err == nil {
					numNoErrs++
					t.Errorf("Wanted error, got %v", v)
					return
				}
				kinds[jvalue.KindOf(err)]++
				t.Logf("- [expected]: %v", err)
			})
		case "i":
			t.Run(tail, func(t *testing.T) {
				_, err := parseEntry(t, f)
				t.Logf("- [implementation defined]: err=%v", err)
			})
		default:
			t.Logf("WARNING: Skipped non-matching filename %q", tail)
		}
	}
	t.Logf("Ran %d positive tests, %d errors", numYes, numYesErrs)
	t.Logf("Ran %d negative tests, %d errors", numNo, numNoErrs)
	for k, n := range kinds {
		t.Logf("- %v: %d", k, n)
	}
}
