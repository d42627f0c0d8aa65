package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/antage/opencorpora/internal/domain"
)

func TestPrintMatches(t *testing.T) {
	var buf bytes.Buffer
	matches := []domain.LemmaMatch{
		{LemmaID: 1, Lemma: "ёж", Grammemes: []string{"NOUN", "anim"}, Form: "ежи", FormGrammemes: []string{"plur", "nomn"}},
		{LemmaID: 7, Lemma: "еж", Grammemes: []string{"NOUN"}},
	}

	if err := printMatches(&buf, "ежи", matches); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if lines[0] != "ежи:" {
		t.Errorf("header = %q", lines[0])
	}
	for _, want := range []string{"1", "ёж", "NOUN,anim", "ежи", "plur,nomn"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("line %q does not contain %q", lines[1], want)
		}
	}
	if !strings.Contains(lines[2], "еж") || strings.Contains(lines[2], "plur") {
		t.Errorf("headword-only line = %q", lines[2])
	}
}

func TestPrintMatches_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := printMatches(&buf, "кот", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "кот: no matches\n" {
		t.Errorf("output = %q", got)
	}
}

func TestPrintImports(t *testing.T) {
	var buf bytes.Buffer
	imports := []domain.DictImport{{
		ID:        uuid.MustParse("8b0e2c5e-4a35-4a3c-9c59-6c1d2f0b9a11"),
		Version:   "0.92",
		Revision:  417150,
		Stats:     domain.DictStats{Lemmata: 4, Forms: 7},
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}}

	if err := printImports(&buf, imports); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("header = %q", lines[0])
	}
	for _, want := range []string{"8b0e2c5e-4a35-4a3c-9c59-6c1d2f0b9a11", "0.92", "417150", "2024-03-01T12:00:00Z"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row %q does not contain %q", lines[1], want)
		}
	}
}

func TestPrintImports_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := printImports(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "no imports\n" {
		t.Errorf("output = %q", buf.String())
	}
}
