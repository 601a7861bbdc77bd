package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	apiv1 "github.com/xyrionz/SafeArchive/pkg/apis/api.safearchive.io/v1"
	"github.com/xyrionz/SafeArchive/pkg/backup"
	"github.com/xyrionz/SafeArchive/pkg/encryption/aescbc"
	"github.com/xyrionz/SafeArchive/pkg/metrics"
	"github.com/xyrionz/SafeArchive/pkg/store"
	"github.com/xyrionz/SafeArchive/pkg/system"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	engine      *backup.Engine
	apiKey      string
	uploadLimit int64
	mux         *http.ServeMux
}

type Options struct {
	// APIKey protects the backup endpoints. Empty falls back to the
	// SERVICE_API_KEY environment variable, and when that is unset too
	// the server runs in open access mode.
	APIKey      string
	UploadLimit int64
}

func (o Options) complete() Options {
	if o.APIKey == "" {
		o.APIKey = system.APIKey()
	}
	if o.UploadLimit <= 0 {
		o.UploadLimit = system.UploadLimit()
	}
	return o
}

func NewServer(engine *backup.Engine, opts Options) *Server {
	opts = opts.complete()
	s := &Server{
		engine:      engine,
		apiKey:      opts.APIKey,
		uploadLimit: opts.UploadLimit,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.route(false, s.home))
	mux.HandleFunc("/health", s.route(false, s.health))
	mux.HandleFunc("/zip", s.route(false, s.zip))
	mux.HandleFunc("/backup", s.route(true, s.backup))
	mux.HandleFunc("/download", s.route(true, s.download))
	mux.HandleFunc("/restore", s.route(true, s.restore))
	mux.HandleFunc("/archives", s.route(true, s.archives))
	mux.HandleFunc("/v1/loglevel", s.route(true, s.loglevel))
	mux.Handle("/metrics", metrics.Handler())
	s.mux = mux

	return s
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	sw := &statusWriter{ResponseWriter: rw, code: http.StatusOK}
	s.mux.ServeHTTP(sw, req)
	metrics.RequestsTotal.WithLabelValues(routeLabel(req.URL.Path), strconv.Itoa(sw.code)).Inc()
}

// Run serves the API on address until the context ends, then drains
// connections.
func (s *Server) Run(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:    address,
		Handler: s,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	eg.Go(func() error {
		logrus.Infof("Listening on %s", address)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	return eg.Wait()
}

func (s *Server) route(protected bool, handler func(rw http.ResponseWriter, req *http.Request) error) http.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) {
		if protected && !s.authorized(req) {
			writeError(rw, http.StatusUnauthorized, "unauthorized - invalid or missing API key")
			return
		}
		if err := handler(rw, req); err != nil {
			s.writeFailure(rw, req, err)
		}
	}
}

func (s *Server) authorized(req *http.Request) bool {
	if s.apiKey == "" {
		return true
	}
	key := req.Header.Get("x-api-key")
	if key == "" {
		key = req.URL.Query().Get("api_key")
	}
	return key == s.apiKey
}

func (s *Server) writeFailure(rw http.ResponseWriter, req *http.Request, err error) {
	maxBytes := &http.MaxBytesError{}
	switch {
	case store.IsArchiveNotFound(err):
		writeError(rw, http.StatusNotFound, "not_found")
	case aescbc.IsWrongPassword(err):
		writeError(rw, http.StatusBadRequest, err.Error())
	case errors.As(err, &maxBytes):
		writeError(rw, http.StatusRequestEntityTooLarge, "uploaded data too large")
	default:
		logrus.Errorf("%s %s failed: %v", req.Method, req.URL.Path, err)
		writeJSON(rw, http.StatusInternalServerError, apiv1.ErrorResponse{
			Error:   "server_error",
			Details: err.Error(),
		})
	}
}

func writeJSON(rw http.ResponseWriter, code int, obj any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	_ = json.NewEncoder(rw).Encode(obj)
}

func writeError(rw http.ResponseWriter, code int, msg string) {
	writeJSON(rw, code, apiv1.ErrorResponse{Error: msg})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func routeLabel(path string) string {
	switch path {
	case "/", "/health", "/zip", "/backup", "/download", "/restore", "/archives", "/metrics", "/v1/loglevel":
		return path
	}
	return "other"
}
