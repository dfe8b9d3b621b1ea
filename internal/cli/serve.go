package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/chenyukang/fiber-world/carousel"
	"github.com/chenyukang/fiber-world/frame"
	"github.com/chenyukang/fiber-world/internal/config"
	"github.com/chenyukang/fiber-world/internal/metrics"
	"github.com/chenyukang/fiber-world/internal/server"
	"github.com/chenyukang/fiber-world/theme"
)

func serveCmd(a *app) *cobra.Command {
	var (
		addr    string
		noWatch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the animation and serve frames, stats and controls over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, addr, !noWatch)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the config file on change")
	return cmd
}

// serve runs the frame loop, the HTTP server and the config watcher until
// ctx is done or one of them fails.
func (a *app) serve(ctx context.Context, addr string, watch bool) error {
	store := a.themeStore()
	st := theme.NewState(a.initialMode(store))
	unbind := store.Bind(st, func(err error) {
		a.log.Warn("theme not saved", "err", err)
	})
	defer unbind()

	met := metrics.New(true)
	d, err := frame.New(append(a.cfg.FrameOptions(),
		frame.WithTheme(st),
		frame.WithObserver(met),
		frame.WithLogger(a.log),
	)...)
	if err != nil {
		return err
	}

	car, err := carousel.New(carousel.RealScheduler{})
	if err != nil {
		return err
	}
	car.Start()
	defer car.Close()

	srv, err := server.New(d, server.Options{
		ClickRate:      a.cfg.Server.ClickRate,
		ClickBurst:     a.cfg.Server.ClickBurst,
		StreamInterval: a.cfg.StatsInterval(),
		Theme:          st,
		Carousel:       car,
		Metrics:        met,
		Logger:         a.log,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx, addr) })
	if watch {
		g.Go(func() error {
			err := config.Watch(gctx, a.configPath, config.DefaultDebounce, func(cfg *config.Config, err error) {
				a.reload(d, cfg, err)
			})
			if err != nil {
				a.log.Warn("config reload disabled", "err", err)
			}
			return nil
		})
	}

	err = g.Wait()
	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return nil
	}
	return err
}

// reload applies a changed config to a running driver. Only network tuning
// and per-frame chances take effect without a restart.
func (a *app) reload(d *frame.Driver, cfg *config.Config, err error) {
	if err != nil {
		a.log.Warn("config reload failed", "path", a.configPath, "err", err)
		return
	}
	if err := d.Retune(cfg.NetworkOptions(), cfg.Animation.SpawnChance, cfg.Animation.EdgeChurn); err != nil {
		a.log.Warn("config not applied", "err", err)
		return
	}
	a.cfg = cfg
	a.log.Info("config reloaded", "path", a.configPath)
}
