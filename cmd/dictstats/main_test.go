package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/antage/opencorpora/internal/app/seeder/opencorpora"
)

func TestWriteStats(t *testing.T) {
	path := filepath.Join("..", "..", "internal", "app", "seeder", "opencorpora", "testdata", "dict_sample.xml")
	res, err := opencorpora.ParseFile(context.Background(), path, opencorpora.Options{})
	if err != nil {
		t.Fatalf("parse sample: %v", err)
	}

	var buf bytes.Buffer
	if err := writeStats(&buf, res.Dict); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `Version: 0.92
Revision: 417150
Grammemes count: 15
Restrictions count: 4
Lemmata count: 4
All forms count: 7
Max forms in a lemma: 3
Max grammemes in a form: 5
Link types count: 2
Links count: 2
`
	if got := buf.String(); got != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
