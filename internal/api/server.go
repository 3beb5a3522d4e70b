package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"studybuddy/internal/models"
	"studybuddy/internal/services"
)

const (
	maxMultipartMemory = 8 << 20 // 8 MB
	serviceMessage     = "AI Study Buddy API is running"
)

// Options tunes the HTTP surface.
type Options struct {
	MaxUploadBytes   int64
	StaticDir        string
	APIKeyConfigured bool
}

// Server serves the upload, info and health endpoints.
type Server struct {
	router    chi.Router
	study     *services.StudyService
	extractor *services.TextExtractor
	uploads   *services.UploadStore
	logger    *zap.Logger
	opts      Options
}

// UploadResponse is the body returned for every accepted upload.
type UploadResponse struct {
	Success       bool               `json:"success"`
	Filename      string             `json:"filename"`
	AIEnabled     bool               `json:"ai_enabled"`
	ProcessedData models.StudyBundle `json:"processed_data"`
}

func NewServer(
	study *services.StudyService,
	extractor *services.TextExtractor,
	uploads *services.UploadStore,
	logger *zap.Logger,
	opts Options,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		router:    chi.NewRouter(),
		study:     study,
		extractor: extractor,
		uploads:   uploads,
		logger:    logger,
		opts:      opts,
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/upload", s.handleUpload)
	r.Post("/upload/", s.handleUpload)

	if s.opts.StaticDir != "" {
		staticFS := http.FileServer(http.Dir(s.opts.StaticDir))
		r.Handle("/static/*", http.StripPrefix("/static/", staticFS))
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    serviceMessage,
		"ai_enabled": s.study.AIEnabled(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "healthy",
		"message":            serviceMessage,
		"ai_enabled":         s.study.AIEnabled(),
		"api_key_configured": s.opts.APIKeyConfigured,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.opts.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	if form := r.MultipartForm; form != nil {
		defer form.RemoveAll()
	}

	file, header, err := r.FormFile("file")
	if err != nil || strings.TrimSpace(header.Filename) == "" {
		if file != nil {
			file.Close()
		}
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	writeJSON(w, http.StatusOK, s.processUpload(r.Context(), header.Filename, file))
}

// processUpload stores the upload, extracts its text and builds the bundle.
// The stored copy is removed before returning on every path.
func (s *Server) processUpload(ctx context.Context, filename string, src io.Reader) UploadResponse {
	log := s.logger.With(
		zap.String("filename", filename),
		zap.String("request_id", middleware.GetReqID(ctx)),
	)
	log.Info("processing file")

	path, err := s.uploads.Save(filename, src)
	defer func() {
		if err := s.uploads.Remove(path); err != nil {
			log.Warn("cleanup upload", zap.Error(err))
		}
	}()
	if err != nil {
		log.Error("store upload", zap.Error(err))
		return UploadResponse{
			Success:       true,
			Filename:      filename,
			AIEnabled:     false,
			ProcessedData: services.CannedBundle(true),
		}
	}

	text := s.extractor.ExtractFile(path, filename)
	log.Info("extracted text", zap.Int("chars", len([]rune(text))))

	bundle := s.study.Process(ctx, text)
	log.Info("file processing completed",
		zap.Int("flashcards", len(bundle.Flashcards)),
		zap.Int("quiz", len(bundle.Quiz)),
	)

	return UploadResponse{
		Success:       true,
		Filename:      filename,
		AIEnabled:     s.study.AIEnabled(),
		ProcessedData: bundle,
	}
}

// cors allows any origin, matching the browser frontend served separately.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
			h.Set("Access-Control-Allow-Headers", reqHeaders)
		} else {
			h.Set("Access-Control-Allow-Headers", "*")
		}
		h.Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
