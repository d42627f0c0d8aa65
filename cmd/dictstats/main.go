// Command dictstats parses an OpenCorpora dictionary dump and prints its
// statistics. It does not touch the database and needs no config file.
//
// Usage:
//
//	dictstats [--strict-link-kinds] [--log-level level] file
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
	"os/signal"

	"github.com/antage/opencorpora/internal/app"
	"github.com/antage/opencorpora/internal/app/seeder/opencorpora"
	"github.com/antage/opencorpora/internal/config"
	"github.com/antage/opencorpora/internal/domain"
)

func main() {
	strictFlag := flag.Bool("strict-link-kinds", false, "fail on links with an undeclared link type")
	levelFlag := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dictstats [flags] file")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	logger := app.NewLogger(config.LogConfig{Level: *levelFlag, Format: "text"}).
		With(slog.String("command", "dictstats"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := opencorpora.ParseFile(ctx, path, opencorpora.Options{StrictLinkKinds: *strictFlag})
	if err != nil {
		logger.Error("parse failed", slog.String("file", path), slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}

	logger.Info("parsed",
		slog.Int("events", res.Stats.Events),
		slog.Int("duplicate_grammemes", res.Stats.DuplicateGrammemes),
		slog.Int("duplicate_lemmata", res.Stats.DuplicateLemmata),
		slog.Int("unresolved_link_kinds", res.Stats.UnresolvedLinkKinds),
	)

	if err := writeStats(os.Stdout, res.Dict); err != nil {
		log.Fatalf("write output: %v", err)
	}
}

func writeStats(w io.Writer, d *domain.Dict) error {
	s := d.Stats()
	_, err := fmt.Fprintf(w,
		"Version: %s\n"+
			"Revision: %d\n"+
			"Grammemes count: %d\n"+
			"Restrictions count: %d\n"+
			"Lemmata count: %d\n"+
			"All forms count: %d\n"+
			"Max forms in a lemma: %d\n"+
			"Max grammemes in a form: %d\n"+
			"Link types count: %d\n"+
			"Links count: %d\n",
		d.Version, d.Revision,
		s.Grammemes, s.Restrictions, s.Lemmata, s.Forms,
		s.MaxFormsInLemma, s.MaxGrammemesInForm,
		s.LinkKinds, s.Links,
	)
	return err
}
