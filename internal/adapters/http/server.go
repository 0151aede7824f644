package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"nanodesign/internal/adapters/cadnano"
	"nanodesign/internal/application"
	"nanodesign/internal/application/commands"
	"nanodesign/internal/domain"
	"nanodesign/internal/metrics"
	"nanodesign/internal/ports"
)

// maxDesignBytes bounds the size of an uploaded design
const maxDesignBytes = 64 << 20

var contentTypes = map[string]string{
	"cadnano":  "application/json",
	"topology": "application/json",
	"csv":      "text/csv",
}

// Server exposes the conversion pipeline over HTTP
type Server struct {
	library ports.SequenceLibrary
	writers []ports.StructureWriter
	params  domain.Parameters
	log     logr.Logger
}

// New creates a server converting with params and the given writers
func New(library ports.SequenceLibrary, params domain.Parameters, log logr.Logger, writers ...ports.StructureWriter) *Server {
	return &Server{library: library, writers: writers, params: params, log: log.WithName("http")}
}

// Routes returns a chi.Router with every endpoint mounted
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.health)
	r.Get("/sequences", s.sequences)
	r.Post("/convert", s.convert)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.V(1).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"took", time.Since(start).String())
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) sequences(w http.ResponseWriter, _ *http.Request) {
	names := []string{}
	if s.library != nil {
		names = append(names, s.library.Names()...)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sequences": names})
}

// convert builds the uploaded caDNAno design and writes the structure in the
// requested format. Query parameters: format, modify, sequence, staples.
func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = "topology"
	}
	modify := false
	if raw := q.Get("modify"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.fail(w, &application.ValidationError{Field: "modify", Message: "must be a boolean"})
			return
		}
		modify = v
	}

	design, err := cadnano.Decode(http.MaxBytesReader(w, r.Body, maxDesignBytes), q.Get("name"))
	if err != nil {
		s.fail(w, &application.ValidationError{Field: "design", Message: err.Error()})
		return
	}
	if design.Name == "" {
		design.Name = "design"
	}

	cmd := commands.NewConvertCommand(nil, s.library, nil, s.log)
	cmd.Design = design
	cmd.Params = s.params
	cmd.Modify = modify
	cmd.SequenceName = q.Get("sequence")
	cmd.Staples = q.Get("staples")

	result, err := cmd.Execute(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Structure-Summary", result.Message)
	export := commands.NewExportCommand(result.Structure, w, format, s.writers...)
	if err := export.Validate(); err != nil {
		w.Header().Del("X-Structure-Summary")
		s.fail(w, err)
		return
	}
	if err := export.Execute(r.Context()); err != nil {
		s.log.Error(err, "export failed", "format", format)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error(err, "request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps application and domain errors onto HTTP status codes
func statusFor(err error) int {
	var validation *application.ValidationError
	switch {
	case errors.As(err, &validation),
		errors.Is(err, application.ErrInvalidDirective),
		errors.Is(err, domain.ErrInvalidNucleotide):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownSequenceName),
		errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownHelixReference),
		errors.Is(err, domain.ErrMalformedConnectivity),
		errors.Is(err, domain.ErrDuplicateHelix):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
