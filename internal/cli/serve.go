package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flipstack/internal/api"
	"github.com/matzehuels/flipstack/pkg/metrics"
	"github.com/matzehuels/flipstack/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Serve the solver as a JSON API until interrupted.

Listen address, timeouts and admission ceilings come from the config file and
FLIPSTACK_* environment variables. Prometheus metrics are exported on the
configured path unless disabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				c.Config.Server.Addr = addr
			}
			if noMetrics {
				c.Config.Metrics.Enabled = false
			}
			return c.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not export Prometheus metrics")

	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	s, err := c.newSolver()
	if err != nil {
		return err
	}

	opts := api.Options{
		Solver: s,
		Logger: c.Logger,
		Config: c.Config.Server,
	}
	if c.Config.Metrics.Enabled {
		m := metrics.New(c.Config.Metrics.Namespace)
		observability.SetSolverHooks(m)
		observability.SetHTTPHooks(m)
		defer observability.Reset()

		opts.Metrics = m.Handler()
		opts.MetricsPath = c.Config.Metrics.Path
	}

	c.Logger.Info("starting server",
		"addr", c.Config.Server.Addr,
		"metrics", c.Config.Metrics.Enabled,
		"unsigned_ceiling", c.Config.Admission.UnsignedCeiling,
		"signed_ceiling", c.Config.Admission.SignedCeiling)

	return api.New(opts).ListenAndServe(ctx)
}
