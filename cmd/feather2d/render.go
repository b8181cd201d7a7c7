package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	feather2d "github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/internal/render"
)

var (
	flagRenderWidth  int
	flagRenderHeight int
)

var renderCmd = &cobra.Command{
	Use:   "render <scene>",
	Short: "Draw a scene as text",
	Long: `Samples every body of the scene on a character grid. Overlapping cells
are drawn with '#', and the first contact of the scene is printed below.

Examples:
  feather2d render scene.yaml
  feather2d render scene.yaml --width 120 --height 40`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVar(&flagRenderWidth, "width", 60, "Grid width in characters")
	renderCmd.Flags().IntVar(&flagRenderHeight, "height", 30, "Grid height in characters")
}

func runRender(cmd *cobra.Command, args []string) error {
	world, names, err := loadWorld(args[0])
	if err != nil {
		return err
	}

	contacts, err := world.Contacts(cmd.Context())
	if err != nil {
		return err
	}

	var contact *feather2d.Contact
	if len(contacts) > 0 {
		contact = &contacts[0]
	}
	logger.Debug("contacts resolved", "count", len(contacts))

	out, err := render.New(lipgloss.NewRenderer(cmd.OutOrStdout()), flagRenderWidth, flagRenderHeight).
		Render(world.Bodies, names, contact)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
