package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dusk-indust/astgen/internal/config"
	"github.com/dusk-indust/astgen/internal/syntax"
	"github.com/sirupsen/logrus"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Language     string
	Pretty       bool
	Outline      bool
	Output       string
	Languages    bool
	ServeHTTP    bool
	ServeMCP     bool
	ServeMCPHTTP bool
	Addr         string
	Remote       string
	Verbose      bool
	Force        bool
	Version      bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("astgen", flag.ContinueOnError)
	fs.StringVar(&flags.Language, "language", "", "force a language instead of inferring it from the file extension")
	fs.BoolVar(&flags.Pretty, "pretty", false, "indent JSON output")
	fs.BoolVar(&flags.Outline, "outline", false, "print a plain-text tree outline instead of JSON")
	fs.StringVar(&flags.Output, "o", "", "write output to a file instead of stdout")
	fs.BoolVar(&flags.Languages, "languages", false, "print the supported languages and exit")
	fs.BoolVar(&flags.ServeHTTP, "serve-http", false, "run the JSON-RPC HTTP server")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server on stdio for Claude Code integration")
	fs.BoolVar(&flags.ServeMCPHTTP, "serve-mcp-http", false, "run as MCP server over streamable HTTP")
	fs.StringVar(&flags.Addr, "addr", "", "bind address for the HTTP servers")
	fs.StringVar(&flags.Remote, "remote", "", "URL of a remote JSON-RPC server to parse through instead of in-process")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.Force, "force", false, "with init, overwrite existing files")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyConfig(&flags, cfg)

	logger := newLogger(flags.Verbose)
	if flags.Verbose {
		syntax.EnableDiagnostics(logger)
	}

	rest := fs.Args()
	if len(rest) > 0 && rest[0] == "init" {
		return runInit(".", flags.Force)
	}

	switch {
	case flags.Languages:
		return runLanguages(flags)
	case flags.ServeMCP:
		return runServeMCPStdio(logger)
	case flags.ServeMCPHTTP:
		return runServeMCPHTTP(logger, flags, cfg)
	case flags.ServeHTTP:
		return runServeHTTP(logger, flags, cfg)
	default:
		return runParse(flags, rest)
	}
}

// applyConfig fills flag values left at their defaults from the project
// config. Explicit flags win.
func applyConfig(flags *cliFlags, cfg *config.ProjectConfig) {
	if flags.Addr == "" && cfg.Addr != "" {
		flags.Addr = cfg.Addr
	}
	if cfg.Verbose {
		flags.Verbose = true
	}
}

func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
