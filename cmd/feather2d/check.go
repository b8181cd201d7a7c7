package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	feather2d "github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/epa"
	"github.com/akmonengine/feather2d/internal/render"
)

var (
	flagCheckRender bool
	flagCheckAll    bool
)

var checkCmd = &cobra.Command{
	Use:   "check <scene>",
	Short: "Collide the first two bodies of a scene",
	Long: `Runs GJK then EPA on the first two bodies of the scene and prints
whether they collide, the normal from the first body toward the second,
the penetration depth and the EPA iteration count.

With --all every pair whose bounds overlap is resolved instead.

Examples:
  feather2d check scene.yaml
  feather2d check scene.yaml --render
  feather2d check scene.yaml --all --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagCheckRender, "render", false, "Draw the scene after the result")
	checkCmd.Flags().BoolVar(&flagCheckAll, "all", false, "Resolve every pair of the scene")
}

func runCheck(cmd *cobra.Command, args []string) error {
	world, names, err := loadWorld(args[0])
	if err != nil {
		return err
	}

	var contact *feather2d.Contact
	if flagCheckAll {
		contact, err = checkAll(cmd, world, names)
	} else {
		contact, err = checkFirstPair(cmd, world)
	}
	if err != nil {
		return err
	}

	if flagCheckRender {
		out, err := render.New(lipgloss.NewRenderer(cmd.OutOrStdout()), 60, 30).Render(world.Bodies, names, contact)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}

	return nil
}

func checkFirstPair(cmd *cobra.Command, world *feather2d.World) (*feather2d.Contact, error) {
	if len(world.Bodies) < 2 {
		return nil, fmt.Errorf("check needs at least two bodies, scene has %d", len(world.Bodies))
	}

	contact, collides, err := feather2d.CollideWithConfig(world.Bodies[0], world.Bodies[1], world.Config)

	// A convergence failure still carries the best estimate
	var convergence *epa.ConvergenceError
	if errors.As(err, &convergence) {
		logger.Warn("EPA did not converge, printing best estimate", "err", convergence.Err)
	} else if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "collides:   %t\n", collides)
	if !collides {
		return nil, nil
	}
	fmt.Fprintf(out, "normal:     (%.6f, %.6f)\n", contact.Normal.X(), contact.Normal.Y())
	fmt.Fprintf(out, "depth:      %.6f\n", contact.Depth)
	fmt.Fprintf(out, "iterations: %d\n", contact.Iterations)

	return &contact, nil
}

func checkAll(cmd *cobra.Command, world *feather2d.World, names []string) (*feather2d.Contact, error) {
	pairs := world.Pairs()
	logger.Debug("broad filter", "bodies", len(world.Bodies), "pairs", len(pairs))

	contacts, err := feather2d.NarrowPhaseWithConfig(cmd.Context(), pairs, world.Workers, world.Config)
	if err != nil {
		return nil, err
	}

	index := make(map[*actor.Body]int, len(world.Bodies))
	for i, body := range world.Bodies {
		index[body] = i
	}

	out := cmd.OutOrStdout()
	if len(contacts) == 0 {
		fmt.Fprintln(out, "No contacts.")
		return nil, nil
	}

	fmt.Fprintf(out, "  %-12s  %-12s  %-22s  %s\n", "A", "B", "Normal", "Depth")
	fmt.Fprintf(out, "  %-12s  %-12s  %-22s  %s\n", "-", "-", "------", "-----")
	for _, c := range contacts {
		normal := fmt.Sprintf("(%.4f, %.4f)", c.Normal.X(), c.Normal.Y())
		fmt.Fprintf(out, "  %-12s  %-12s  %-22s  %.6f\n", names[index[c.BodyA]], names[index[c.BodyB]], normal, c.Depth)
	}

	return &contacts[0], nil
}
