package main

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	feather2d "github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
)

const (
	maxDepthError  = 1e-4
	maxNormalError = 0.01
)

var (
	flagSweepSteps    int
	flagSweepR1       float64
	flagSweepR2       float64
	flagSweepDistance float64
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare the solver with the circle-circle closed form",
	Long: `Places a circle of radius --r2 around a circle of radius --r1 at --distance,
every 360/--steps degrees, and resolves all pairs as one batch. Two circles
overlap by r1 + r2 - distance along the line joining their centers.

Fails when the depth error exceeds 1e-4 or the normal error exceeds 0.01.

Examples:
  feather2d sweep
  feather2d sweep --steps 3600 --workers 8
  feather2d sweep --r1 1 --r2 1 --distance 1.5`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().IntVar(&flagSweepSteps, "steps", 360, "Number of angles")
	sweepCmd.Flags().Float64Var(&flagSweepR1, "r1", 0.50001, "Radius of the fixed circle")
	sweepCmd.Flags().Float64Var(&flagSweepR2, "r2", 0.5, "Radius of the orbiting circle")
	sweepCmd.Flags().Float64Var(&flagSweepDistance, "distance", 1, "Distance between centers")
}

// sweepReport holds the worst errors over a sweep.
type sweepReport struct {
	Pairs       int
	Contacts    int
	Missed      int
	DepthError  float64
	NormalError float64
	Iterations  int
}

func (r sweepReport) ok() bool {
	return r.Missed == 0 && r.DepthError <= maxDepthError && r.NormalError <= maxNormalError
}

func runSweep(cmd *cobra.Command, args []string) error {
	if flagSweepSteps < 1 {
		return fmt.Errorf("--steps must be positive, got %d", flagSweepSteps)
	}

	pairs, directions := sweepPairs(flagSweepSteps, flagSweepR1, flagSweepR2, flagSweepDistance)
	contacts, err := feather2d.NarrowPhaseWithConfig(cmd.Context(), pairs, cfg.Workers, cfg.Solver)
	if err != nil {
		return err
	}

	report := compareSweep(contacts, directions, flagSweepR1+flagSweepR2-flagSweepDistance)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "pairs:           %d\n", report.Pairs)
	fmt.Fprintf(out, "contacts:        %d\n", report.Contacts)
	fmt.Fprintf(out, "max depth error: %.3e\n", report.DepthError)
	fmt.Fprintf(out, "max normal err:  %.3e\n", report.NormalError)
	fmt.Fprintf(out, "max iterations:  %d\n", report.Iterations)

	if !report.ok() {
		return fmt.Errorf("sweep out of tolerance: %d missed, depth error %.3e, normal error %.3e",
			report.Missed, report.DepthError, report.NormalError)
	}
	logger.Info("sweep within tolerance", "steps", flagSweepSteps, "workers", cfg.Workers)
	return nil
}

// sweepPairs places the second circle around the first at every angle.
// directions[i] is the unit vector from the first center to the second for pair i.
func sweepPairs(steps int, r1, r2, distance float64) ([]feather2d.Pair, []mgl64.Vec2) {
	pairs := make([]feather2d.Pair, steps)
	directions := make([]mgl64.Vec2, steps)

	for i := range steps {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		directions[i] = mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
		pairs[i] = feather2d.Pair{
			BodyA: actor.NewBody(&actor.Circle{Radius: r1}, mgl64.Vec2{}),
			BodyB: actor.NewBody(&actor.Circle{Radius: r2}, directions[i].Mul(distance)),
		}
	}

	return pairs, directions
}

// compareSweep measures contacts against the closed form. A pair expected to
// overlap without a contact, or the reverse, counts as missed.
func compareSweep(contacts []feather2d.Contact, directions []mgl64.Vec2, depth float64) sweepReport {
	report := sweepReport{Pairs: len(directions), Contacts: len(contacts)}

	// Touching circles collide with a zero depth
	if depth >= 0 {
		report.Missed = len(directions) - len(contacts)
	} else {
		report.Missed = len(contacts)
	}

	for _, c := range contacts {
		report.DepthError = max(report.DepthError, math.Abs(c.Depth-depth))
		report.NormalError = max(report.NormalError, c.Normal.Sub(directions[c.PairIndex]).Len())
		report.Iterations = max(report.Iterations, c.Iterations)
	}

	return report
}
