// symref renames symbols and maps their references across a repository
// using token-level matching.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phobologic/symref/internal/config"
	"github.com/phobologic/symref/internal/discover"
	"github.com/phobologic/symref/internal/engine"
	"github.com/phobologic/symref/internal/logging"
	"github.com/phobologic/symref/internal/model"
	"github.com/phobologic/symref/internal/render"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

type options struct {
	operation        string
	language         string
	file             string
	line             int
	column           int
	newName          string
	root             string
	dryRun           bool
	maxResults       int
	respectGitignore bool
	maxFileSize      int64
	format           string
	verbose          bool
	configPath       string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "symref",
		Short: "Deterministic symbol rename and reference mapping",
		Long: `symref resolves the identifier under a cursor and renames it, lists its
references, or scores whether it is safe to delete, across every file of
the same language under a repository root.

Python, Ruby and TypeScript are tokenized with tree-sitter: strings and
comments never match and attribute accesses (obj.name) are reported but
never renamed.
Their --column is 0-based. Go, Java and Rust use whole-word matching, which
also hits words inside strings and comments; their --column is 1-based.

Operations:
  rename                  rewrite every occurrence to --newName
  reference-map           list occurrences
  safe-delete-candidates  list occurrences and score deletion safety`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOperation(cmd, &opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("symref {{.Version}}\n")

	f := cmd.Flags()
	f.StringVar(&opts.operation, "operation", string(model.Rename), "rename, reference-map or safe-delete-candidates")
	f.StringVar(&opts.language, "language", "", "python, ruby, typescript, go, java or rust (default: from the file extension)")
	f.StringVar(&opts.file, "file", "", "file containing the cursor")
	f.IntVar(&opts.line, "line", 0, "cursor line (1-based)")
	f.IntVar(&opts.column, "column", 0, "cursor column (0-based for python/ruby/typescript, 1-based otherwise)")
	f.StringVar(&opts.newName, "newName", "", "replacement identifier for rename")
	f.StringVar(&opts.root, "targetRepoRoot", ".", "repository root to scan")
	f.BoolVar(&opts.dryRun, "dryRun", false, "report what rename would change without writing")
	f.IntVar(&opts.maxResults, "maxResults", engine.DefaultMaxResults, "maximum references to emit")
	f.BoolVar(&opts.respectGitignore, "respectGitignore", false, "skip files ignored by git")
	f.Int64Var(&opts.maxFileSize, "maxFileSize", 0, "skip files larger than this many bytes (0: no limit)")
	f.StringVar(&opts.format, "format", render.JSON, "output format: json, yaml or toon")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")
	f.StringVar(&opts.configPath, "config", "", "config file (default: .symref.{json,yaml,toml} in the repository root)")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("line")
	_ = cmd.MarkFlagRequired("column")

	cmd.AddCommand(newInitCmd(stdout, stderr))
	cmd.AddCommand(newVersionCmd(stdout))
	return cmd
}

func runOperation(cmd *cobra.Command, opts *options, stdout, stderr io.Writer) error {
	cfg, err := config.Load(opts.root, opts.configPath, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := logging.New(stderr, cfg.LogLevel, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	res, err := engine.New(logger).Run(engine.Request{
		Operation:  model.Operation(opts.operation),
		Language:   opts.language,
		File:       opts.file,
		Line:       opts.line,
		Column:     opts.column,
		NewName:    opts.newName,
		Root:       opts.root,
		DryRun:     opts.dryRun,
		MaxResults: cfg.MaxResults,
		Discover: discover.Options{
			ExtraIgnoreDirs:  cfg.IgnoreDirs,
			RespectGitignore: cfg.RespectGitignore,
			MaxFileSize:      cfg.MaxFileSize,
		},
	})
	if err != nil {
		return err
	}

	return render.Write(stdout, res, cfg.Format)
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintf(stdout, "symref %s\n", version)
			return err
		},
	}
}
