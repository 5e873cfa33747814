package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lessonlab/vizboard/pkg/pipeline"
	"github.com/lessonlab/vizboard/pkg/scene"
)

// processOpts holds the command-line flags for the process command.
type processOpts struct {
	output        string // output file path (stdout if empty)
	noCache       bool   // disable result caching
	refresh       bool   // bypass the cache even when populated
	fallback      bool   // emit a placeholder scene when nothing survives
	fallbackTitle string // title shown on the placeholder scene
	commands      bool   // emit the flat command list instead of the scene graph
}

// processCommand creates the process command, the main entry point for
// turning raw LLM scene output into a render-ready visualization.
func (c *CLI) processCommand() *cobra.Command {
	var opts processOpts

	cmd := &cobra.Command{
		Use:   "process [scenes.json]",
		Short: "Process raw scenes into a render-ready visualization",
		Long: `Process raw scenes into a render-ready visualization.

The input file holds the JSON scene list produced by an LLM: shapes with
zone hints, animations, narration blocks. Processing sanitizes every field,
assigns concrete canvas coordinates that avoid overlap within each zone,
and reports all auto-corrections as warnings on the output.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runProcess(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached results")
	cmd.Flags().BoolVar(&opts.fallback, "fallback", false, "emit a placeholder scene when no scene survives")
	cmd.Flags().StringVar(&opts.fallbackTitle, "fallback-title", "", "title for the placeholder scene")
	cmd.Flags().BoolVar(&opts.commands, "commands", false, "output the flat whiteboard command list")

	return cmd
}

func (c *CLI) runProcess(cmd *cobra.Command, input string, opts processOpts) error {
	ctx := cmd.Context()

	rawScenes, err := readRawScenes(input)
	if err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Canvas:        cfg.ToCanvas(),
		Fallback:      opts.fallback,
		FallbackTitle: opts.fallbackTitle,
		Refresh:       opts.refresh,
		Logger:        c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Processing %d scenes...", len(rawScenes)))
	spinner.Start()

	viz, cacheHit, err := runner.ProcessWithCacheInfo(ctx, rawScenes, pipeOpts)
	if err != nil {
		spinner.StopWithError("Processing failed")
		return fmt.Errorf("process: %w", err)
	}
	spinner.Stop()

	if err := writeProcessOutput(viz, opts); err != nil {
		return err
	}

	printSuccess("Processed %s", input)
	printStats(len(viz.Scenes), countShapes(viz), len(viz.Warnings), cacheHit)
	for _, w := range viz.Warnings {
		printWarning("scene %d: %s", w.Scene, w.Message)
	}
	if opts.output != "" {
		printFile(opts.output)
		printNextStep("Preview a scene", fmt.Sprintf("vizboard preview %s", opts.output))
	}
	return nil
}

// readRawScenes loads the raw scene list. Both a bare JSON array and an
// object with a "scenes" key are accepted, since LLM output arrives in
// either shape.
func readRawScenes(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var scenes []map[string]any
		if err := json.Unmarshal(data, &scenes); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return scenes, nil
	}

	var wrapper struct {
		Scenes []map[string]any `json:"scenes"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return wrapper.Scenes, nil
}

func writeProcessOutput(viz *scene.Visualization, opts processOpts) error {
	var data []byte
	var err error
	if opts.commands {
		data, err = json.MarshalIndent(viz.Commands(), "", "  ")
	} else {
		data, err = scene.MarshalVisualization(viz)
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	if opts.output == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(opts.output, data, 0644)
}

func countShapes(viz *scene.Visualization) int {
	n := 0
	for _, sc := range viz.Scenes {
		n += len(sc.Shapes)
	}
	return n
}
