// File: cmd/generate.go
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/brotli"
	json "github.com/json-iterator/go"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/autoplay-cli/internal/autoplay"
	"github.com/xkilldash9x/autoplay-cli/internal/config"
	"github.com/xkilldash9x/autoplay-cli/internal/element"
	"github.com/xkilldash9x/autoplay-cli/internal/observability"
	"github.com/xkilldash9x/autoplay-cli/internal/preset"
)

// generateFlags holds the values of the generate command's flags.
type generateFlags struct {
	elementsPath string
	presets      []string
	outputPath   string
	seed         int64
	seedSet      bool
	diagnostics  bool
}

// presetOutput is one preset's entry in the generate output document.
type presetOutput struct {
	Preset      string `json:"preset"`
	Description string `json:"description"`
	autoplay.Result
}

// generateOutput is the document written by the generate command.
type generateOutput struct {
	Version string         `json:"version"`
	Source  string         `json:"source"`
	Runs    []presetOutput `json:"runs"`
}

func newGenerateCmd() *cobra.Command {
	var flags generateFlags

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate action samples from an element file",
		Long: `Reads a JSON element document, runs the autoplay pipeline once per requested
preset, and writes the resulting action samples as JSON. Presets run concurrently.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			flags.seedSet = cmd.Flags().Changed("seed")
			if cmd.Flags().Changed("diagnostics") {
				cfg.SetGeneratorDiagnostics(flags.diagnostics)
			}
			return runGenerate(ctx, observability.GetLogger(), cfg, flags, cmd.OutOrStdout())
		},
	}

	generateCmd.Flags().StringVarP(&flags.elementsPath, "elements", "e", "", "Path to the JSON element document (required)")
	_ = generateCmd.MarkFlagRequired("elements")
	generateCmd.Flags().StringSliceVarP(&flags.presets, "preset", "p", nil, "Preset to run; repeat for several (default from config)")
	generateCmd.Flags().StringVarP(&flags.outputPath, "out", "o", "", "Output file path; a .br suffix brotli-compresses it. If unset, JSON is printed to stdout.")
	generateCmd.Flags().Int64Var(&flags.seed, "seed", 0, "Seed for humanization noise (overrides config)")
	generateCmd.Flags().BoolVar(&flags.diagnostics, "diagnostics", false, "Log timeline construction at debug level")

	return generateCmd
}

// runGenerate contains the core, testable logic of the generate command.
func runGenerate(ctx context.Context, logger *zap.Logger, cfg config.Interface, flags generateFlags, stdout io.Writer) error {
	if flags.seedSet {
		cfg.SetGeneratorSeed(flags.seed)
	}
	genCfg := cfg.Generator()

	names := flags.presets
	if len(names) == 0 {
		names = []string{genCfg.Preset}
	}

	type job struct {
		preset preset.Preset
		opts   autoplay.Options
	}
	jobs := make([]job, 0, len(names))
	for _, name := range names {
		c := genCfg
		c.Preset = name
		p, opts, err := preset.Resolve(c)
		if err != nil {
			return err
		}
		jobs = append(jobs, job{preset: p, opts: opts})
	}

	elementsPath, err := homedir.Expand(flags.elementsPath)
	if err != nil {
		return fmt.Errorf("invalid elements path: %w", err)
	}
	elements, err := element.DecodeFile(elementsPath)
	if err != nil {
		return err
	}
	logger.Info("Loaded elements",
		zap.String("path", flags.elementsPath),
		zap.Int("count", len(elements)),
		zap.Int("presets", len(jobs)),
	)

	var sink observability.Sink
	if genCfg.Diagnostics {
		sink = observability.NewZapSink(logger)
	}
	gen := autoplay.NewGenerator(logger, sink)

	runs := make([]presetOutput, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := gen.Generate(elements, j.opts)
			if err != nil {
				return fmt.Errorf("preset %s: %w", j.preset, err)
			}
			runs[i] = presetOutput{Preset: j.preset.String(), Description: j.preset.Description(), Result: res}
			logger.Info("Preset generated",
				zap.String("preset", j.preset.String()),
				zap.String("run_id", res.RunID),
				zap.Int("samples", len(res.Samples)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	outputPath, err := homedir.Expand(flags.outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	return writeOutput(logger, generateOutput{Version: Version, Source: elementsPath, Runs: runs}, outputPath, stdout)
}

// writeOutput writes the document to path, or pretty-printed to stdout when path is empty.
func writeOutput(logger *zap.Logger, doc generateOutput, path string, stdout io.Writer) error {
	data, err := json.ConfigCompatibleWithStandardLibrary.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize output to JSON: %w", err)
	}

	if path == "" {
		_, err := fmt.Fprintln(stdout, string(data))
		return err
	}
	if strings.HasSuffix(path, ".br") {
		if data, err = compress(data); err != nil {
			return fmt.Errorf("failed to compress output: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Info("Output written to file", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

// compress brotli-encodes data at the default quality.
func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
