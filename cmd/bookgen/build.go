package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	deliverance "github.com/joshjung/deliverance-star"
	"github.com/joshjung/deliverance-star/internal/config"
	"github.com/joshjung/deliverance-star/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage         = errors.New("invalid usage")
	ErrNoSource      = errors.New("no source specified")
	ErrArtifactDrift = errors.New("artifacts out of date with source")
)

// dirPermissions applies to created output directories.
const dirPermissions = 0o750

// run executes the build according to flags, writing progress to stderr.
func run(ctx context.Context, flags *buildFlags, stderr io.Writer) error {
	cfg := config.DefaultConfig()
	if flags.config != "" {
		loaded, err := config.LoadConfig(resolveConfigPath(flags.config))
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	mergeFlags(flags, cfg)

	if cfg.Source == "" {
		return ErrNoSource
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	r := deliverance.NewRenderer()

	if flags.check {
		return runCheck(ctx, r, cfg, stderr, flags.verbose)
	}

	for _, out := range []string{cfg.Output.HTML, cfg.Output.Meta} {
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, dirPermissions); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
		}
	}

	doc, err := r.BuildArtifact(ctx, cfg.Source, cfg.Output.HTML, cfg.Output.Meta)
	if err != nil {
		return err
	}

	if flags.verbose {
		fmt.Fprintf(stderr, "Rendered %s: %d headings, %d footnotes\n",
			cfg.Source, len(doc.ContentTree), len(doc.Footnotes))
		fmt.Fprintf(stderr, "Wrote %s and %s\n", cfg.Output.HTML, cfg.Output.Meta)
	}
	return nil
}

// runCheck re-renders the source and verifies the stored artifacts still
// match, without writing anything. Drift exits non-zero so the check can
// gate deployments.
func runCheck(ctx context.Context, r *deliverance.Renderer, cfg *config.Config, stderr io.Writer, verbose bool) error {
	stored, err := deliverance.LoadArtifact(cfg.Output.HTML, cfg.Output.Meta)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(cfg.Source) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}
	fresh, err := r.Render(ctx, string(source))
	if err != nil {
		return err
	}

	if !documentsEqual(stored, fresh) {
		return fmt.Errorf("%w: %s", ErrArtifactDrift, cfg.Source)
	}
	if verbose {
		fmt.Fprintf(stderr, "Artifacts match %s\n", cfg.Source)
	}
	return nil
}

// documentsEqual reports whether two documents carry the same HTML,
// content tree, and footnote table.
func documentsEqual(a, b *deliverance.Document) bool {
	if a.HTML != b.HTML || len(a.ContentTree) != len(b.ContentTree) || len(a.Footnotes) != len(b.Footnotes) {
		return false
	}
	for i, n := range a.ContentTree {
		if n != b.ContentTree[i] {
			return false
		}
	}
	for id, fn := range a.Footnotes {
		if b.Footnotes[id] != fn {
			return false
		}
	}
	return true
}

// resolveConfigPath expands a bare config name into a YAML file in the
// working directory. Anything that already looks like a path, or carries
// an extension, is used as given.
//
// Examples:
//   - "book" -> "book.yaml"
//   - "book.yml" -> "book.yml"
//   - "./book" -> "./book"
func resolveConfigPath(arg string) string {
	if fileutil.IsFilePath(arg) || filepath.Ext(arg) != "" {
		return arg
	}
	return arg + ".yaml"
}

// mergeFlags applies CLI flags over config values (CLI wins).
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.source != "" {
		cfg.Source = flags.source
	}
	if flags.outHTML != "" {
		cfg.Output.HTML = flags.outHTML
	}
	if flags.outMeta != "" {
		cfg.Output.Meta = flags.outMeta
	}
}
