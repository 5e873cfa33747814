package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lessonlab/vizboard/pkg/render"
	"github.com/lessonlab/vizboard/pkg/scene"
)

// previewCommand creates the preview command for rendering processed
// visualizations as static SVG files.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		sceneID   string
		outputDir string
		zones     bool
	)

	cmd := &cobra.Command{
		Use:   "preview [visualization.json]",
		Short: "Render SVG previews of a processed visualization",
		Long: `Render SVG previews of a processed visualization.

One SVG per scene is written next to the input file (or into --output-dir).
Use --scene to preview a single scene and --zones to overlay the nine
canvas zones, which helps when debugging placement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(args[0], sceneID, outputDir, zones)
		},
	}

	cmd.Flags().StringVarP(&sceneID, "scene", "s", "", "preview only this scene id")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for SVG files")
	cmd.Flags().BoolVar(&zones, "zones", false, "overlay zone boundaries")

	return cmd
}

func (c *CLI) runPreview(input, sceneID, outputDir string, zones bool) error {
	viz, err := scene.ReadVisualizationFile(input)
	if err != nil {
		return fmt.Errorf("load visualization %s: %w", input, err)
	}

	if outputDir == "" {
		outputDir = filepath.Dir(input)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", outputDir, err)
	}

	var opts []render.SVGOption
	if zones {
		opts = append(opts, render.WithZoneGrid())
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	tracker := newProgress(c.Logger)
	written := 0

	for _, sc := range viz.Scenes {
		if sceneID != "" && sc.ID != sceneID {
			continue
		}
		path := filepath.Join(outputDir, fmt.Sprintf("%s_%s.svg", base, sc.ID))
		svg := render.RenderSceneSVG(viz.Canvas, sc, opts...)
		if err := os.WriteFile(path, svg, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
		written++
	}

	if written == 0 {
		if sceneID != "" {
			return fmt.Errorf("scene %q not found in %s", sceneID, input)
		}
		printInfo("No scenes to preview")
		return nil
	}

	tracker.done(fmt.Sprintf("Rendered %d previews", written))
	return nil
}
