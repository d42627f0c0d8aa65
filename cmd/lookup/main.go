// Command lookup prints the lemmata whose headword or forms match the given
// words in a stored dictionary import (the latest one by default).
//
// Usage:
//
//	lookup [--config path] [--import uuid] [--limit n] word...
//	lookup [--config path] --imports
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/antage/opencorpora/internal/adapter/postgres"
	"github.com/antage/opencorpora/internal/adapter/postgres/morph"
	"github.com/antage/opencorpora/internal/app"
	"github.com/antage/opencorpora/internal/domain"
	"github.com/antage/opencorpora/internal/service/morphology"
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	importFlag := flag.String("import", "", "import id (default: latest)")
	limitFlag := flag.Int("limit", 20, "maximum matches per word")
	importsFlag := flag.Bool("imports", false, "list stored imports and exit")
	flag.Parse()

	if flag.NArg() == 0 && !*importsFlag {
		fmt.Fprintln(os.Stderr, "usage: lookup [flags] word...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	var importID *uuid.UUID
	if *importFlag != "" {
		id, err := uuid.Parse(*importFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --import: %v\n", err)
			os.Exit(2)
		}
		importID = &id
	}

	cfg, logger, err := app.Init("lookup", *configFlag)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := morphology.NewService(logger, morph.New(pool))

	if *importsFlag {
		imports, err := svc.Imports(ctx)
		if err != nil {
			logger.Error("list imports", slog.String("error", err.Error()))
			pool.Close()
			os.Exit(1)
		}
		if err := printImports(os.Stdout, imports); err != nil {
			log.Fatalf("write output: %v", err)
		}
		return
	}

	for _, word := range flag.Args() {
		res, err := svc.Lookup(ctx, importID, word, *limitFlag)
		if err != nil {
			logger.Error("lookup failed", slog.String("word", word), slog.String("error", err.Error()))
			pool.Close()
			os.Exit(1)
		}
		if err := printMatches(os.Stdout, word, res.Matches); err != nil {
			log.Fatalf("write output: %v", err)
		}
	}
}

// printMatches writes one line per match: lemma id, headword, lemma
// grammemes, then the matched form and its grammemes when the hit was on a
// form.
func printMatches(w io.Writer, word string, matches []domain.LemmaMatch) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintf(w, "%s: no matches\n", word)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s:\n", word)
	for _, m := range matches {
		fmt.Fprintf(tw, "  %d\t%s\t%s", m.LemmaID, m.Lemma, strings.Join(m.Grammemes, ","))
		if m.Form != "" {
			fmt.Fprintf(tw, "\t%s\t%s", m.Form, strings.Join(m.FormGrammemes, ","))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func printImports(w io.Writer, imports []domain.DictImport) error {
	if len(imports) == 0 {
		_, err := fmt.Fprintln(w, "no imports")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tVERSION\tREVISION\tLEMMATA\tFORMS\tCREATED")
	for _, imp := range imports {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
			imp.ID, imp.Version, imp.Revision, imp.Stats.Lemmata, imp.Stats.Forms,
			imp.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}
