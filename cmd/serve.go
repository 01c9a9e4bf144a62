package cmd

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"pscan/core/config"
	"pscan/core/index"
	"pscan/core/loader"
	"pscan/core/logger"
	"pscan/core/metrics"
	"pscan/core/middleware/auth"
	"pscan/core/middleware/rayid"
	"pscan/core/scan"
	"pscan/core/watch"

	"pscan/feature/browse"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	portFlag  string
	hostFlag  string
	openFlag  bool
	watchFlag bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the browse server",
	Long:  `Scans the source, then serves the browse page and its JSON API until interrupted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		applyServeFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		logg, err := newLogger(cfg, false)
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		idx, report, err := buildIndex(ctx, cfg, logg)
		if err != nil {
			return err
		}
		logg.Info("Index ready",
			zap.String("source", idx.Scanner().Source().Name()),
			zap.Strings("params", idx.Engine().AllParams()),
			zap.Int("records", report.Records),
		)

		app := newApp(cfg, idx, logg)

		if cfg.Scan.Watch {
			w, err := startWatcher(idx, cfg, logg)
			if err != nil {
				return err
			}
			if w != nil {
				defer w.Stop()
			}
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()), zap.String("url", cfg.Server.URL()))
			return app.Listen(cfg.Server.Address())
		})
		g.Go(func() error {
			<-gctx.Done()
			logg.Info("Shutting down server...")
			return app.Shutdown()
		})

		if cfg.Server.OpenBrowser {
			if err := openBrowser(cfg.Server.URL()); err != nil {
				logg.Warn("Failed to open browser", zap.Error(err))
			}
		}

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("port") {
		cfg.Server.Port = portFlag
	}
	if f.Changed("host") {
		cfg.Server.Host = hostFlag
	}
	if f.Changed("open") {
		cfg.Server.OpenBrowser = openFlag
	}
	if f.Changed("watch") {
		cfg.Scan.Watch = watchFlag
	}
}

// newApp creates the Fiber application with middleware and every feature loaded.
func newApp(cfg *config.Config, idx *index.Index, logg *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	mgr := loader.NewManager(logg)
	mgr.Register(browse.NewFeature(idx, logg))

	// RayID first so every log line carries it
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// The page itself is public; it forwards the api_key query to the API.
	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/"}}))

	if err := mgr.LoadAll(app); err != nil {
		logg.Fatal("Failed to load features", zap.Error(err))
	}
	return app
}

// startWatcher rescans the index when files below the root change.
// Only the file source can be watched.
func startWatcher(idx *index.Index, cfg *config.Config, logg *zap.Logger) (*watch.Watcher, error) {
	src, ok := idx.Scanner().Source().(*scan.FileSource)
	if !ok {
		logg.Warn("Watching is only supported for the file source", zap.String("source", cfg.Scan.Source))
		return nil, nil
	}

	w, err := watch.New(src, cfg.Scan.Debounce(), func(ctx context.Context) error {
		report, err := idx.Rescan(ctx)
		if err != nil {
			return err
		}
		metrics.ObserveRescan(report)
		return nil
	}, logg)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w, nil
}

func openBrowser(url string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		c = exec.Command("open", url)
	default:
		c = exec.Command("xdg-open", url)
	}
	return c.Start()
}

func init() {
	f := serveCmd.Flags()
	f.StringVarP(&portFlag, "port", "p", "", "port to listen on (overrides SERVER_PORT)")
	f.StringVar(&hostFlag, "host", "", "interface to bind (overrides SERVER_HOST)")
	f.BoolVar(&openFlag, "open", false, "open the browse page in the default browser")
	f.BoolVarP(&watchFlag, "watch", "w", false, "rescan when files below the root change")
	RootCmd.AddCommand(serveCmd)
}
