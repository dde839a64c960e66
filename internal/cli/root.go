// Package cli is the terminal front end of the portal.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/clippings/internal/auth"
	"github.com/MrSnakeDoc/clippings/internal/client"
	"github.com/MrSnakeDoc/clippings/internal/config"
	"github.com/MrSnakeDoc/clippings/internal/logger"
	"github.com/MrSnakeDoc/clippings/internal/portal"
	"github.com/MrSnakeDoc/clippings/internal/version"
)

// rootOptions holds the global flags and what PersistentPreRunE builds from them.
type rootOptions struct {
	server  string
	verbose bool
	color   string

	cfg     *config.ClientConfig
	logger  logger.Logger
	printer *Printer
	client  *client.Client
	intn    func(int) int // captcha random source, nil for the default
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "clippings",
		Short: "Browse and upload press clippings",
		Long: `clippings talks to a clippingsd record store.

Example usage:
  clippings list --search solar --category Projects
  clippings browse --year 2024 --month 3
  clippings upload report.pdf --title "Plant visit" --date 2024-05-01 --category Projects
  clippings stats`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.server, "server", "", "record store URL (default $CLIPPINGS_SERVER or http://localhost:3001)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")
	root.PersistentFlags().StringVar(&opts.color, "color", "auto", "color output: auto, always or never")

	root.AddCommand(
		newListCmd(opts),
		newBrowseCmd(opts),
		newUploadCmd(opts),
		newFilesCmd(opts),
		newStatsCmd(opts),
		newCategoriesCmd(opts),
	)
	return root
}

// Execute runs the command tree and prints the final error, if any.
func Execute(ctx context.Context) error {
	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func (o *rootOptions) init(cmd *cobra.Command) error {
	mode, err := ParseColorMode(o.color)
	if err != nil {
		return err
	}

	o.cfg = config.LoadClient()
	if o.server != "" {
		o.cfg.ServerURL = strings.TrimRight(o.server, "/")
	}
	level := o.cfg.LogLevel
	if o.verbose {
		level = "debug"
	}

	o.logger = logger.NewStderr(level)
	o.printer = NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), ResolveColors(mode))
	o.client = client.New(o.cfg.ServerURL, o.cfg.HTTPTimeout, o.logger)

	o.logger.Debug("client configured",
		logger.String("server", o.cfg.ServerURL),
		logger.Duration("timeout", o.cfg.HTTPTimeout))
	return nil
}

// startPortal loads the collection. A load failure is reported and the
// command continues on an empty collection.
func (o *rootOptions) startPortal(ctx context.Context) *portal.Portal {
	var authOpts []auth.Option
	if o.intn != nil {
		authOpts = append(authOpts, auth.WithIntn(o.intn))
	}
	a := auth.New(auth.Credentials{UserID: o.cfg.Username, Password: o.cfg.Password}, authOpts...)
	p := portal.New(o.client, a, portal.Options{
		PageSize:     o.cfg.PageSize,
		ProgressStep: o.cfg.ProgressStep,
	}, o.logger)

	if err := p.Start(ctx); err != nil {
		o.logger.Debug("portal started degraded", logger.Error(err))
	}
	o.flush(p)
	return p
}

func (o *rootOptions) flush(p *portal.Portal) {
	for _, n := range p.Notices() {
		o.printer.Notice(n)
	}
}
