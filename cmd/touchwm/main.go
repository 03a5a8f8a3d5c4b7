package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ItsNotGoodName/touchwm/internal/api"
	"github.com/ItsNotGoodName/touchwm/internal/app"
	"github.com/ItsNotGoodName/touchwm/internal/backend/x11"
	"github.com/ItsNotGoodName/touchwm/internal/build"
	"github.com/ItsNotGoodName/touchwm/internal/bus"
	"github.com/ItsNotGoodName/touchwm/internal/config"
	"github.com/ItsNotGoodName/touchwm/internal/core"
	"github.com/ItsNotGoodName/touchwm/pkg/sutureext"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/phsym/console-slog"
)

type Options struct {
	Debug  bool   `doc:"enable debug"`
	Host   string `doc:"host to listen on"`
	Port   int    `doc:"port to listen on" default:"8080"`
	Config string `doc:"config file" default:".touchwm.yaml"`
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		if options.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			bus.SetContext(ctx)

			configFilePath, err := filepath.Abs(options.Config)
			if err != nil {
				return err
			}

			store, err := config.NewStore(config.NewYAML(configFilePath))
			if err != nil {
				return err
			}

			backend, err := x11.New()
			if err != nil {
				return err
			}

			compositor, err := app.New(backend, store)
			if err != nil {
				backend.Close()
				return err
			}

			super := sutureext.NewSimple("root")
			sutureext.Add(super, compositor)
			sutureext.Add(super, config.NewWatcher(store, configFilePath))
			sutureext.Add(super, api.NewServer(compositor, core.Address(options.Host, options.Port)))

			return super.Serve(ctx)
		})
	})

	cli.Root().Version = build.Current.Version

	cli.Run()
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}
