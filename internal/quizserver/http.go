package quizserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go_quiz/internal/engine"
	"github.com/anatolykoptev/go_quiz/internal/engine/quiz"
	"github.com/anatolykoptev/go_quiz/internal/toolutil"
)

const (
	welcomeMessage = "Welcome to the YouTube quiz generator API"
	maxRequestBody = 64 << 10
)

type generateRequest struct {
	YouTubeURL   string          `json:"youtube_url"`
	NumQuestions json.RawMessage `json:"num_questions,omitempty"`
}

type generateResponse struct {
	Status          string        `json:"status"`
	ID              string        `json:"id"`
	VideoID         string        `json:"video_id"`
	VideoTitle      string        `json:"video_title"`
	Quiz            engine.Quiz   `json:"quiz"`
	ContentSource   engine.Source `json:"content_source"`
	FallbackReasons []string      `json:"fallback_reasons,omitempty"`
}

type historyResponse struct {
	Status  string              `json:"status"`
	Quizzes []quiz.ArchivedQuiz `json:"quizzes"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewHandler builds the HTTP API: POST /generate-quiz, GET /get-msg,
// GET /quizzes, GET /metrics and GET /health. All routes allow CORS.
func NewHandler(svc QuizService) http.Handler {
	h := &handler{svc: svc}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate-quiz", h.generateQuiz)
	mux.HandleFunc("GET /get-msg", h.getMsg)
	mux.HandleFunc("GET /quizzes", h.quizzes)
	mux.HandleFunc("GET /metrics", h.metrics)
	mux.HandleFunc("GET /health", h.health)
	return withCORS(mux)
}

type handler struct {
	svc QuizService
}

func (h *handler) generateQuiz(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "request body must be JSON")
			return
		}
	}
	req.YouTubeURL = strings.TrimSpace(req.YouTubeURL)
	if req.YouTubeURL == "" {
		writeError(w, http.StatusBadRequest, "YouTube URL is required")
		return
	}

	start := time.Now()
	res, err := h.svc.Generate(r.Context(), req.YouTubeURL, toolutil.ParseCount(string(req.NumQuestions)))
	if err != nil {
		status := toolutil.HTTPStatus(err)
		slog.Error("http: generate-quiz failed",
			slog.String("url", req.YouTubeURL), slog.Int("status", status), slog.Any("error", err))
		writeError(w, status, err.Error())
		return
	}
	slog.Info("http: quiz generated", slog.String("quiz", res.String()),
		slog.Duration("took", time.Since(start)))

	writeJSON(w, http.StatusOK, generateResponse{
		Status:          "success",
		ID:              res.ID,
		VideoID:         res.VideoID,
		VideoTitle:      res.VideoTitle,
		Quiz:            res.Quiz,
		ContentSource:   res.ContentSource,
		FallbackReasons: res.FallbackReasons,
	})
}

func (h *handler) getMsg(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": welcomeMessage})
}

func (h *handler) quizzes(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := h.svc.History(r.Context(), limit)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, quiz.ErrArchiveDisabled) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Status: "success", Quizzes: list})
}

func (h *handler) metrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, engine.GetMetrics())
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hdr := w.Header()
		hdr.Set("Access-Control-Allow-Origin", "*")
		hdr.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		hdr.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Status: "error", Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("http: encode response", slog.Any("error", err))
		status = http.StatusInternalServerError
		data = []byte(`{"status":"error","message":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
