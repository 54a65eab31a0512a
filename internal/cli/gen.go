package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/typetower/pkg/emit"
	"github.com/matzehuels/typetower/pkg/emit/languages"
	"github.com/matzehuels/typetower/pkg/pipeline"
)

// genCommand creates the gen command for generating source code.
func (c *CLI) genCommand() *cobra.Command {
	var (
		langsStr string
		output   string
		noCache  bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "gen [source]",
		Short: "Generate typed source code from samples or a JSON Schema",
		Long: `Generate typed source code from example documents or a JSON Schema.

The source can be a local file, an http(s) URL, or "-" for stdin. Input
format (JSON, YAML, TOML) is detected from the file extension and can be
overridden with --format. YAML streams and concatenated JSON documents are
treated as multiple samples and unified into one type.

Results are cached locally for faster subsequent runs.

Examples:
  typetower gen person.json -l go
  typetower gen samples.yaml -l typescript,python -o ./out/models
  typetower gen https://example.com/schema.json --schema -l go
  cat data.json | typetower gen - -n Payload`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(c.Logger)
			cfg.apply(&opts)

			if err := setSource(&opts, args[0]); err != nil {
				return err
			}
			if langs := parseLanguages(langsStr); len(langs) > 0 {
				opts.Languages = langs
			}
			if len(opts.Languages) == 0 {
				selected, err := pickLanguages()
				if err != nil {
					return err
				}
				opts.Languages = selected
			}
			if err := pipeline.ValidateLanguages(opts.Languages); err != nil {
				return err
			}
			return c.runGen(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&langsStr, "lang", "l", "", "target language(s): go, typescript, python (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single language) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.RootName, "name", "n", "", "name for the top-level type")
	cmd.Flags().StringVar(&opts.Format, "format", "", "input format: json (default), yaml, toml")
	cmd.Flags().StringVar(&opts.PackageName, "pkg", "", "package or module name for the generated code")
	cmd.Flags().BoolVar(&opts.Schema, "schema", false, "treat the input as a JSON Schema")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runGen executes the pipeline and writes the generated sources.
func (c *CLI) runGen(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s...", strings.Join(opts.Languages, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	if output == "" {
		return writeArtifactsStdout(result.Artifacts)
	}

	printSuccess("Generated %s from %s", strings.Join(opts.Languages, ", "), sourceLabel(opts))
	printStats(result.Stats.DocCount, result.Stats.TypeCount, result.CacheInfo.InferHit && result.CacheInfo.EmitHit)

	return writeArtifactFiles(result.Artifacts, output)
}

// setSource fills opts.Source or opts.Input from the positional argument.
// "-" reads the whole document from stdin.
func setSource(opts *pipeline.Options, arg string) error {
	if arg != "-" {
		opts.Source = arg
		return nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	opts.Input = string(data)
	return nil
}

// sourceLabel returns a short human-readable description of the input.
func sourceLabel(opts pipeline.Options) string {
	if opts.Source != "" {
		return opts.Source
	}
	return "stdin"
}

// orderedLanguages returns the languages present in artifacts in canonical
// registration order, so output is deterministic.
func orderedLanguages(artifacts map[string][]byte) []*emit.Language {
	var out []*emit.Language
	for _, lang := range languages.All {
		if _, ok := artifacts[lang.Name]; ok {
			out = append(out, lang)
		}
	}
	return out
}

// writeArtifactsStdout streams all generated sources to stdout. When more
// than one language was requested, a dim separator names each section.
func writeArtifactsStdout(artifacts map[string][]byte) error {
	langs := orderedLanguages(artifacts)
	for i, lang := range langs {
		if len(langs) > 1 {
			if i > 0 {
				fmt.Println()
			}
			fmt.Fprintln(os.Stderr, StyleDim.Render("--- "+lang.Name+" ---"))
		}
		if _, err := os.Stdout.Write(artifacts[lang.Name]); err != nil {
			return err
		}
	}
	return nil
}

// writeArtifactFiles writes generated sources to disk. A single language
// goes to output directly (extension appended if missing); multiple
// languages share output as a base path and get their own extensions.
func writeArtifactFiles(artifacts map[string][]byte, output string) error {
	langs := orderedLanguages(artifacts)

	if len(langs) == 1 {
		lang := langs[0]
		path := output
		if filepath.Ext(path) == "" {
			path += lang.Extension
		}
		if err := writeFile(path, artifacts[lang.Name]); err != nil {
			return err
		}
		printFile(path)
		return nil
	}

	base := strings.TrimSuffix(output, filepath.Ext(output))
	for _, lang := range langs {
		path := base + lang.Extension
		if err := writeFile(path, artifacts[lang.Name]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
