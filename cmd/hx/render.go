package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hx/internal/errors"
	"github.com/vango-dev/hx/pkg/host"
	"github.com/vango-dev/hx/pkg/render"
)

func renderCmd(configDir *string) *cobra.Command {
	var (
		ticks  int
		pretty bool
		failAt int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo to HTML",
		Long: `Mount the demo headlessly, tick its clock, and print the committed tree.

Time is simulated: each tick advances a manual clock by the configured
tick interval, so throttle windows elapse without waiting.

Examples:
  hx render
  hx render --ticks 10 --pretty
  hx render --fail-at 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(*configDir, failAt)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("ticks") {
				ticks = rt.cfg.Demo.Ticks
			}
			if !cmd.Flags().Changed("pretty") {
				pretty = rt.cfg.Render.Pretty
			}

			html, err := renderDemo(cmd.Context(), rt, ticks, pretty)
			if err != nil {
				return errors.FromError(err, "E060")
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		},
	}

	cmd.Flags().IntVarP(&ticks, "ticks", "n", 3, "Number of clock ticks before printing")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the HTML output")
	cmd.Flags().IntVar(&failAt, "fail-at", 0, "Tick at which the demo widget fails (0 never)")

	return cmd
}

// renderDemo mounts the demo on a manual clock, applies ticks and returns
// the final HTML.
func renderDemo(ctx context.Context, rt *env, ticks int, pretty bool) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	clock := host.NewManualClock(time.Now().Truncate(time.Second))
	root := rt.root(host.WithClock(clock))
	defer root.Unmount()

	if err := root.Render(rt.app.Node()); err != nil {
		return "", err
	}
	if err := root.Flush(ctx); err != nil {
		return "", err
	}

	interval := rt.cfg.Demo.TickInterval.D()
	for i := 0; i < ticks; i++ {
		rt.app.Tick(clock.Now())
		clock.Advance(interval)
		if err := root.Flush(ctx); err != nil {
			return "", err
		}
	}

	r := render.NewRenderer(render.RendererConfig{Pretty: pretty})
	return r.RenderToString(root.Tree())
}
