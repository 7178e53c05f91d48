package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/timcondit/kintsugi/pkg/pipeline"
	"github.com/timcondit/kintsugi/pkg/source/manifest"
)

// Tuner styles.
var (
	tuneSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAmber)
	tuneNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	tuneDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// Parameter indices in the tuner.
const (
	paramSeed = iota
	paramScale
	paramAmplitude
	paramCount
)

// Adjustment step per keypress.
const (
	stepScale     = 0.005
	stepAmplitude = 0.1
)

// tuneCommand creates the tune command for interactive parameter tuning.
func (c *CLI) tuneCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tune [scene.toml]",
		Short: "Interactively tune a scene's noise parameters",
		Long: `Interactively tune a scene's noise parameters.

The tuner re-renders the scene after every adjustment and writes the SVG to
the output file, so keeping the file open in a browser gives a live preview.
Adjust seed, noise scale, and noise amplitude with the arrow keys; the
chosen values are printed on exit for copying back into the manifest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = basePath("", args[0]) + ".svg"
			}
			return c.runTune(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "SVG file to write previews to")

	return cmd
}

// runTune loads the scene and drives the bubbletea tuner.
func (c *CLI) runTune(ctx context.Context, input, output string) error {
	scene, err := manifest.Load(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	model := newTuneModel(ctx, runner, scene, output)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	m, ok := final.(tuneModel)
	if !ok {
		return nil
	}
	printSuccess("Tuned %s", StyleHighlight.Render(scene.Name))
	printDetail("seed = %d", m.scene.Config.Seed)
	printDetail("noise_scale = %g", m.scene.Config.NoiseScale)
	printDetail("noise_amplitude = %g", m.scene.Config.NoiseAmplitude)
	printFile(output)
	return nil
}

// renderedMsg reports the outcome of one preview render.
type renderedMsg struct {
	paths int
	err   error
}

// tuneModel is the bubbletea model for the parameter tuner.
type tuneModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	scene  *manifest.Scene
	output string

	cursor    int
	paths     int
	rendering bool
	err       error
}

func newTuneModel(ctx context.Context, runner *pipeline.Runner, scene *manifest.Scene, output string) tuneModel {
	return tuneModel{
		ctx:    ctx,
		runner: runner,
		scene:  scene,
		output: output,
	}
}

func (m tuneModel) Init() tea.Cmd {
	return m.renderCmd()
}

func (m tuneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case renderedMsg:
		m.rendering = false
		m.paths = msg.paths
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < paramCount-1 {
				m.cursor++
			}
		case "left", "h":
			m.adjust(-1)
			return m.startRender()
		case "right", "l":
			m.adjust(1)
			return m.startRender()
		case "r":
			return m.startRender()
		}
	}
	return m, nil
}

// adjust moves the selected parameter one step in the given direction.
// Scale and amplitude are clamped at zero.
func (m *tuneModel) adjust(dir float64) {
	cfg := &m.scene.Config
	switch m.cursor {
	case paramSeed:
		cfg.Seed += int64(dir)
	case paramScale:
		cfg.NoiseScale += dir * stepScale
		if cfg.NoiseScale < 0 {
			cfg.NoiseScale = 0
		}
	case paramAmplitude:
		cfg.NoiseAmplitude += dir * stepAmplitude
		if cfg.NoiseAmplitude < 0 {
			cfg.NoiseAmplitude = 0
		}
	}
}

func (m tuneModel) startRender() (tea.Model, tea.Cmd) {
	m.rendering = true
	return m, m.renderCmd()
}

// renderCmd renders the scene with the current parameters and writes the
// preview file.
func (m tuneModel) renderCmd() tea.Cmd {
	scene := m.scene
	output := m.output
	runner := m.runner
	ctx := m.ctx

	return func() tea.Msg {
		result, err := runner.Execute(ctx, pipeline.Options{
			Scene:   scene,
			Formats: []string{pipeline.FormatSVG},
		})
		if err != nil {
			return renderedMsg{err: err}
		}
		if err := os.WriteFile(output, result.Artifacts[pipeline.FormatSVG], 0644); err != nil {
			return renderedMsg{err: err}
		}
		return renderedMsg{paths: result.Stats.PathCount}
	}
}

func (m tuneModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tune " + m.scene.Name))
	b.WriteString("\n")
	b.WriteString(tuneDimStyle.Render("↑/↓ select  ←/→ adjust  r re-render  q quit"))
	b.WriteString("\n\n")

	rows := []struct {
		name  string
		value string
	}{
		{"seed", fmt.Sprintf("%d", m.scene.Config.Seed)},
		{"noise scale", fmt.Sprintf("%.3f", m.scene.Config.NoiseScale)},
		{"noise amplitude", fmt.Sprintf("%.1f", m.scene.Config.NoiseAmplitude)},
	}
	for i, row := range rows {
		cursor := "  "
		style := tuneNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = tuneSelectedStyle
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n",
			cursor,
			style.Width(16).Render(row.name),
			StyleValue.Render(row.value)))
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(StyleWarning.Render("render failed: " + m.err.Error()))
	case m.rendering:
		b.WriteString(tuneDimStyle.Render("rendering..."))
	default:
		b.WriteString(tuneDimStyle.Render(fmt.Sprintf("%d paths → %s", m.paths, m.output)))
	}
	b.WriteString("\n")

	return b.String()
}
