package jamb

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/3-lines-studio/jamb/internal/adapters/cache"
	"github.com/3-lines-studio/jamb/internal/adapters/cli"
	"github.com/3-lines-studio/jamb/internal/adapters/dataset"
	jambfs "github.com/3-lines-studio/jamb/internal/adapters/fs"
	httpadapter "github.com/3-lines-studio/jamb/internal/adapters/http"
	"github.com/3-lines-studio/jamb/internal/adapters/sanity"
	"github.com/3-lines-studio/jamb/internal/assets"
	"github.com/3-lines-studio/jamb/internal/config"
	"github.com/3-lines-studio/jamb/internal/core"
	"github.com/3-lines-studio/jamb/internal/live"
	"github.com/3-lines-studio/jamb/internal/logging"
	"github.com/3-lines-studio/jamb/internal/pagebuilder"
	"github.com/3-lines-studio/jamb/internal/usecase"
)

type Config = config.Config

// ContentSource is where documents come from. The Sanity client and the
// local dataset both implement it.
type ContentSource = usecase.ContentSource

type Option func(*App)

func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithContentSource replaces the source chosen from the configuration.
func WithContentSource(src ContentSource) Option {
	return func(a *App) {
		a.source = src
	}
}

// WithRegistry replaces the default block renderers.
func WithRegistry(r *pagebuilder.Registry) Option {
	return func(a *App) {
		a.registry = r
	}
}

func WithUnknownHook(hook pagebuilder.UnknownHook) Option {
	return func(a *App) {
		a.unknownHook = hook
	}
}

// WithRoutes mounts extra endpoints ahead of the page catch-all.
func WithRoutes(fn func(chi.Router)) Option {
	return func(a *App) {
		a.routes = fn
	}
}

type App struct {
	cfg         *Config
	logger      *slog.Logger
	source      ContentSource
	registry    *pagebuilder.Registry
	unknownHook pagebuilder.UnknownHook
	routes      func(chi.Router)

	dataset  *dataset.Dataset
	cache    *cache.Content
	broker   *live.Broker
	store    *live.Store
	pages    *usecase.PageService
	manifest *core.AssetManifest
	handler  http.Handler
}

func New(cfg *Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	}
	for _, w := range cfg.Warnings {
		a.logger.Warn(w)
	}

	if a.source == nil {
		src, err := a.openSource()
		if err != nil {
			return nil, err
		}
		a.source = src
	}
	a.cache = cache.New(a.source, cfg.CacheTTL, a.logger)

	a.broker = live.NewBroker()
	a.store = live.NewStore(
		live.WithBroker(a.broker),
		live.WithInvalidate(a.cache.Invalidate),
		live.WithStoreLogger(a.logger),
	)

	images := core.ImageURLBuilder{ProjectID: cfg.Sanity.ProjectID, Dataset: cfg.Sanity.Dataset}
	dispatchOpts := []pagebuilder.Option{
		pagebuilder.WithLogger(a.logger),
		pagebuilder.WithEnv(pagebuilder.Env{Images: images}),
		pagebuilder.WithUnknownHook(a.unknownHook),
	}
	if len(cfg.Joinable) > 0 {
		dispatchOpts = append(dispatchOpts, pagebuilder.WithJoinable(cfg.Joinable...))
	}
	if studio := cfg.StudioURL(); studio != "" {
		dispatchOpts = append(dispatchOpts, pagebuilder.WithVisualEditing(core.VisualEditing{
			StudioURL: studio,
			ProjectID: cfg.Sanity.ProjectID,
			Dataset:   cfg.Sanity.Dataset,
		}))
	}
	dispatcher := pagebuilder.NewDispatcher(a.registry, dispatchOpts...)

	a.pages = usecase.NewPageService(a.cache, dispatcher, pagebuilder.NewLayout(images),
		usecase.WithOverrides(a.store),
		usecase.WithPageLogger(a.logger),
		usecase.WithLiveScript(assets.LiveScript),
	)

	if !cfg.Dev {
		manifest, err := hashManifest(assets.FS())
		if err != nil {
			return nil, err
		}
		a.manifest = manifest
	}

	draft := httpadapter.NewDraftMode(cfg.PreviewSecret, !cfg.Dev)
	a.handler = httpadapter.NewRouter(httpadapter.RouterConfig{
		Pages:    a.pages,
		Live:     httpadapter.NewLiveHandler(a.store, a.broker, a.pages, draft, cfg.Dev, a.logger),
		Draft:    draft,
		Assets:   assets.FS(),
		Public:   publicFS(cfg.PublicDir),
		Manifest: a.manifest,
		IsDev:    cfg.Dev,
		Logger:   a.logger,
		Routes:   a.routes,
	})
	return a, nil
}

func (a *App) openSource() (ContentSource, error) {
	if a.cfg.ContentDir != "" {
		ds, err := dataset.Open(a.cfg.ContentDir, a.logger)
		if err != nil {
			return nil, fmt.Errorf("open content dir: %w", err)
		}
		a.dataset = ds
		a.logger.Info("using local dataset", "dir", a.cfg.ContentDir, "documents", ds.Len())
		return ds, nil
	}

	if err := a.cfg.RequireSource(); err != nil {
		return nil, err
	}
	return sanity.NewClient(sanity.Config{
		ProjectID:  a.cfg.Sanity.ProjectID,
		Dataset:    a.cfg.Sanity.Dataset,
		APIVersion: a.cfg.Sanity.APIVersion,
		Token:      a.cfg.Sanity.Token,
		UseCDN:     a.cfg.Sanity.UseCDN,
	}, sanity.WithLogger(a.logger))
}

// hashManifest names every embedded asset by content so responses can be
// cached indefinitely.
func hashManifest(fsys fs.FS) (*core.AssetManifest, error) {
	manifest := &core.AssetManifest{Assets: map[string]string{}}
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		manifest.Assets[name] = core.HashedName(name, data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("hash assets: %w", err)
	}
	return manifest, nil
}

func publicFS(dir string) fs.FS {
	if dir == "" {
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}
	return os.DirFS(dir)
}

func (a *App) Handler() http.Handler {
	return a.handler
}

// Start serves HTTP on the configured address until ctx is done, watching
// the local dataset alongside when enabled.
func (a *App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("serving", "addr", a.cfg.Addr, "dev", a.cfg.Dev)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.broker.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if a.dataset != nil && a.cfg.Watch {
		g.Go(func() error {
			return live.NewWatcher(a.dataset.Dir(), a.dataset, a.store, a.logger).Run(gctx)
		})
	}
	return g.Wait()
}

func (a *App) Stop() error {
	a.broker.Close()
	a.cache.Clear()
	return nil
}

type ExportOptions struct {
	OutDir string
	Clean  bool
	Output usecase.CLIOutput
}

// Export renders the published site into static files.
func (a *App) Export(ctx context.Context, opts ExportOptions) usecase.ExportOutput {
	if opts.OutDir == "" {
		opts.OutDir = a.cfg.ExportDir
	}
	if opts.Output == nil {
		opts.Output = cli.NewOutput()
	}
	svc := usecase.NewExportService(a.pages, a.cache, jambfs.NewOSFileSystem(), opts.Output)
	return svc.ExportStatic(ctx, usecase.ExportInput{
		OutDir: opts.OutDir,
		Assets: assets.FS(),
		Public: publicFS(a.cfg.PublicDir),
		Clean:  opts.Clean,
	})
}
