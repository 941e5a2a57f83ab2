package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/planviz/planviz/pkg/cache"
	"github.com/planviz/planviz/pkg/errors"
	"github.com/planviz/planviz/pkg/pipeline"
	"github.com/planviz/planviz/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string // listen address
	redisAddr     string // Redis address; empty uses the local file cache
	redisPassword string
	redisDB       int
	mongoURI      string // MongoDB URI; empty keeps history in memory
	mongoDB       string // MongoDB database name
}

// newServeCmd creates the serve command, running the rendering pipeline as
// an HTTP service with a diagram history API.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080", mongoDB: appName}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendering pipeline over HTTP",
		Long: `Serve the rendering pipeline over HTTP.

Endpoints:
  POST   /api/render          render a plan (pipeline options as JSON body)
  GET    /api/diagrams        list rendered diagrams, newest first
  GET    /api/diagrams/{id}   fetch one diagram record
  DELETE /api/diagrams/{id}   delete a diagram record
  GET    /healthz             liveness probe

Without --redis the render cache is the local file cache; without --mongo
the diagram history lives in memory and is lost on restart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the render cache (host:port)")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for diagram history")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")

	return cmd
}

// runServe wires the cache, store, and router, then serves until the
// context is cancelled.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	c, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}
	st, err := serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	srv := &server{
		runner: pipeline.NewRunner(c, nil, logger),
		store:  st,
		logger: logger,
	}
	defer srv.runner.Close()

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("Listening on %s", opts.addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// serveCache picks the render cache backend: Redis when configured, the
// local file cache otherwise.
func serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.redisAddr != "" {
		return cache.NewRedisCache(ctx, opts.redisAddr, opts.redisPassword, opts.redisDB)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// serveStore picks the history backend: MongoDB when configured, an
// in-memory store otherwise.
func serveStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongoURI != "" {
		return store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
	}
	return store.NewMemoryStore(), nil
}

// server holds the HTTP handler dependencies.
type server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *charmlog.Logger
}

// routes builds the chi router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Get("/diagrams", s.handleList)
		r.Get("/diagrams/{id}", s.handleGet)
		r.Delete("/diagrams/{id}", s.handleDelete)
	})
	return r
}

// logRequests logs one line per request at debug level.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

// renderResponse is the POST /api/render reply. Artifact bytes are
// base64-encoded by encoding/json.
type renderResponse struct {
	ID           string            `json:"id,omitempty"`
	PlanHash     string            `json:"plan_hash"`
	NodeCount    int               `json:"node_count"`
	ElementCount int               `json:"element_count"`
	Cached       bool              `json:"cached"`
	Artifacts    map[string][]byte `json:"artifacts"`
}

// handleRender executes the pipeline for the posted options and records the
// result in the history store.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	resp := renderResponse{
		PlanHash:     result.PlanHash,
		NodeCount:    result.Stats.NodeCount,
		ElementCount: result.Stats.ElementCount,
		Cached:       result.CacheInfo.DiagramHit,
		Artifacts:    result.Artifacts,
	}

	if opts.PlanText != "" {
		rec, err := s.store.Put(r.Context(), store.Record{
			PlanText: opts.PlanText,
			PlanHash: result.PlanHash,
			Dialect:  opts.Dialect,
			Document: result.DocumentJSON,
		})
		if err != nil {
			s.logger.Warnf("History write failed: %v", err)
		} else {
			resp.ID = rec.ID
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleList returns recent diagram records, newest first.
func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit: %q", v))
			return
		}
		limit = n
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// handleGet fetches one diagram record by ID.
func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleDelete removes one diagram record by ID.
func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// statusFor maps pipeline and store error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPlan, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidConfig, errors.ErrCodePlanCardinality, errors.ErrCodePlanArrowMismatch:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  string(errors.GetCode(err)),
	})
}
