package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dusk-indust/astgen/internal/export"
	"github.com/dusk-indust/astgen/internal/rpc"
	"github.com/dusk-indust/astgen/internal/syntax"
	"golang.org/x/sync/errgroup"
)

// extToLanguage maps file extensions to language identifiers.
var extToLanguage = map[string]string{
	".json": "json",
	".rs":   "rust",
	".js":   "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".ts":   "typescript",
	".py":   "python",
	".go":   "go",
	".ml":   "ocaml",
	".mli":  "ocaml",
}

// languageFor picks the language for a file: the forced one if set, the
// extension mapping otherwise. Unknown extensions fall through as the bare
// extension so the parse yields an unsupported-language envelope instead of
// a CLI error.
func languageFor(path, forced string) string {
	if forced != "" {
		return forced
	}
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extToLanguage[ext]; ok {
		return lang
	}
	return strings.TrimPrefix(ext, ".")
}

// generator produces an envelope for one source, either in-process or via a
// remote server.
type generator func(ctx context.Context, code, language string) (string, error)

func newGenerator(flags cliFlags) generator {
	if flags.Remote != "" {
		client := rpc.NewClient()
		return func(ctx context.Context, code, language string) (string, error) {
			return client.Generate(ctx, flags.Remote, code, language)
		}
	}
	return func(_ context.Context, code, language string) (string, error) {
		return syntax.GenerateAST(code, language), nil
	}
}

// runParse parses the given files (or stdin) and renders one envelope each.
func runParse(flags cliFlags, paths []string) error {
	gen := newGenerator(flags)

	var out io.Writer = os.Stdout
	if flags.Output != "" {
		f, err := os.Create(flags.Output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flags.Output, err)
		}
		defer f.Close()
		out = f
	}

	if len(paths) == 0 || (len(paths) == 1 && paths[0] == "-") {
		return parseStdin(flags, gen, out)
	}

	// Parse files in parallel, bounded by CPU count; output stays in
	// argument order.
	envelopes := make([]string, len(paths))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			code, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			envelope, err := gen(ctx, string(code), languageFor(path, flags.Language))
			if err != nil {
				return err
			}
			envelopes[i] = envelope
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, envelope := range envelopes {
		if err := writeEnvelope(out, envelope, flags); err != nil {
			return err
		}
	}
	return nil
}

func parseStdin(flags cliFlags, gen generator, out io.Writer) error {
	if flags.Language == "" {
		return fmt.Errorf("reading from stdin requires -language")
	}

	code, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	envelope, err := gen(context.Background(), string(code), flags.Language)
	if err != nil {
		return err
	}
	return writeEnvelope(out, envelope, flags)
}

// writeEnvelope renders one envelope with the selected renderer.
func writeEnvelope(w io.Writer, envelope string, flags cliFlags) error {
	if flags.Outline {
		return export.WriteOutline(w, envelope)
	}
	return export.WriteJSON(w, envelope, flags.Pretty)
}
