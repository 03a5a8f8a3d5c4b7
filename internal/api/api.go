// Package api exposes window manager state over HTTP. Handlers run their
// reads and writes on the compositor loop.
package api

import (
	"context"
	"net"
	"net/http"

	"github.com/ItsNotGoodName/touchwm/internal/app"
	"github.com/ItsNotGoodName/touchwm/internal/build"
	"github.com/ItsNotGoodName/touchwm/internal/wm"
	"github.com/ItsNotGoodName/touchwm/pkg/chiext"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/k0kubun/pp/v3"
)

type WindowDTO struct {
	ID        string `json:"id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	W         int    `json:"w"`
	H         int    `json:"h"`
	Visible   bool   `json:"visible"`
	Primary   bool   `json:"primary"`
	Secondary bool   `json:"secondary"`
}

type ListWindowsOutput struct {
	Body struct {
		Windows []WindowDTO `json:"windows"`
	}
}

type GetViewOutput struct {
	Body struct {
		View string `json:"view"`
	}
}

func NewServer(compositor *app.Compositor, address string) Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chiext.Logger())
	r.Use(middleware.Recoverer)

	humaAPI := humachi.New(r, huma.DefaultConfig("touchwm", build.Current.Version))

	huma.Register(humaAPI, huma.Operation{
		OperationID: "list-windows",
		Method:      http.MethodGet,
		Path:        "/api/windows",
	}, func(ctx context.Context, _ *struct{}) (*ListWindowsOutput, error) {
		var infos []wm.WindowInfo
		if err := compositor.Do(ctx, func(w *wm.Windows) {
			infos = w.Snapshot()
		}); err != nil {
			return nil, err
		}

		res := &ListWindowsOutput{}
		res.Body.Windows = make([]WindowDTO, 0, len(infos))
		for _, info := range infos {
			res.Body.Windows = append(res.Body.Windows, WindowDTO{
				ID:        info.ID,
				X:         info.Rectangle.Loc.X,
				Y:         info.Rectangle.Loc.Y,
				W:         info.Rectangle.Size.W,
				H:         info.Rectangle.Size.H,
				Visible:   info.Visible,
				Primary:   info.Primary,
				Secondary: info.Secondary,
			})
		}
		return res, nil
	})

	huma.Register(humaAPI, huma.Operation{
		OperationID: "get-view",
		Method:      http.MethodGet,
		Path:        "/api/view",
	}, func(ctx context.Context, _ *struct{}) (*GetViewOutput, error) {
		var view wm.View
		if err := compositor.Do(ctx, func(w *wm.Windows) {
			view = w.ActiveView()
		}); err != nil {
			return nil, err
		}

		res := &GetViewOutput{}
		res.Body.View = view.String()
		return res, nil
	})

	huma.Register(humaAPI, huma.Operation{
		OperationID: "toggle-view",
		Method:      http.MethodPost,
		Path:        "/api/view/toggle",
	}, func(ctx context.Context, _ *struct{}) (*GetViewOutput, error) {
		var view wm.View
		if err := compositor.Do(ctx, func(w *wm.Windows) {
			w.ToggleView()
			view = w.ActiveView()
		}); err != nil {
			return nil, err
		}

		res := &GetViewOutput{}
		res.Body.View = view.String()
		return res, nil
	})

	r.Get("/api/debug/state", func(rw http.ResponseWriter, r *http.Request) {
		var infos []wm.WindowInfo
		var view wm.View
		if err := compositor.Do(r.Context(), func(w *wm.Windows) {
			infos = w.Snapshot()
			view = w.ActiveView()
		}); err != nil {
			http.Error(rw, err.Error(), http.StatusInternalServerError)
			return
		}

		printer := pp.New()
		printer.SetColoringEnabled(false)

		rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
		printer.Fprintln(rw, map[string]any{
			"view":    view.String(),
			"windows": infos,
		})
	})

	return Server{
		address: address,
		handler: r,
	}
}

type Server struct {
	address string
	handler http.Handler
}

func (Server) String() string {
	return "api.Server"
}

func (s Server) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.address,
		Handler: s.handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errC := make(chan error, 1)
	go func() { errC <- server.ListenAndServe() }()

	select {
	case <-ctx.Done():
		server.Close()
		return ctx.Err()
	case err := <-errC:
		return err
	}
}
