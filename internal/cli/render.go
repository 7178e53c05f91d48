package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timcondit/kintsugi/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output         string   // output file path (or base path for multiple formats)
	formats        []string // output formats: "svg", "json"
	seed           int64    // noise seed override
	noiseScale     float64  // noise frequency override
	noiseAmplitude float64  // noise amplitude override
	refresh        bool     // re-render even when cached
	noCache        bool     // disable caching
}

// renderCommand creates the render command for generating drawings.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [scene.toml]",
		Short: "Render a scene manifest to a hand-drawn SVG",
		Long: `Render a scene manifest to a hand-drawn drawing.

The render command loads a TOML scene manifest, perturbs its geometry with
deterministic noise, and writes the result in the requested formats. The
same scene and seed always produce byte-identical output.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "override the scene's noise seed")
	cmd.Flags().Float64Var(&opts.noiseScale, "noise-scale", 0, "override the scene's noise scale")
	cmd.Flags().Float64Var(&opts.noiseAmplitude, "noise-amplitude", 0, "override the scene's noise amplitude")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when artifacts are cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender executes the pipeline for one scene and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Sketching %s...", filepath.Base(input)))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		ScenePath:      input,
		Formats:        opts.formats,
		Seed:           opts.seed,
		NoiseScale:     opts.noiseScale,
		NoiseAmplitude: opts.noiseAmplitude,
		Refresh:        opts.refresh,
		Logger:         c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %s", StyleHighlight.Render(result.Scene.Name))
	printStats(result.Stats.PrimitiveCount, result.Stats.PathCount, result.CacheInfo.RenderHit)

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if opts.output != "" && len(opts.formats) == 1 {
			path = opts.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	if len(opts.formats) == 1 && opts.formats[0] == pipeline.FormatSVG {
		printNextStep("Preview it", fmt.Sprintf("kintsugi serve %s", filepath.Dir(input)))
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output carries
// a known format extension, that extension is stripped so multiple formats
// do not stack suffixes.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
