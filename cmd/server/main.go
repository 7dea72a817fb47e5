package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/endracle/priceninja/internal/config"
	"github.com/endracle/priceninja/internal/logging"
	"github.com/endracle/priceninja/internal/metrics"
	"github.com/endracle/priceninja/internal/pricing"
	"github.com/endracle/priceninja/internal/suggest"
	"github.com/endracle/priceninja/internal/web"
)

const (
	calculatorPage = "calculator.html"

	msgFixFields          = "Please fix the highlighted fields."
	msgInvalidForSuggest  = "Please fill out the form correctly before getting a suggestion."
	msgSuggestionReceived = "AI pricing suggestion received."
)

type server struct {
	views              *web.Renderer
	suggester          *suggest.Requester
	logger             *zap.Logger
	suggestionsEnabled bool
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

type calculatorViewData struct {
	baseViewData
	Form               formValues
	Errors             pricing.ValidationErrors
	Result             *pricing.Result
	Suggestion         string
	SuggestionsEnabled bool
}

func main() {
	cfg := config.Load()

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Development: cfg.IsDev()})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	views, err := web.NewRenderer()
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	gen := newGenerator(ctx, cfg, logger)
	srv := newServer(views, suggest.NewRequester(gen, logger), logger, cfg.SuggestionsEnabled())

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr), zap.Bool("suggestions_enabled", srv.suggestionsEnabled))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newGenerator(ctx context.Context, cfg config.Config, logger *zap.Logger) suggest.Generator {
	if !cfg.SuggestionsEnabled() {
		return suggest.Disabled(suggest.ErrNotConfigured)
	}

	gen, err := suggest.NewGeminiGenerator(ctx, suggest.GeminiConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
	if err != nil {
		logger.Warn("AI suggestions unavailable", zap.Error(err))
		return suggest.Disabled(err)
	}
	return gen
}

func newServer(views *web.Renderer, suggester *suggest.Requester, logger *zap.Logger, suggestionsEnabled bool) *server {
	return &server{
		views:              views,
		suggester:          suggester,
		logger:             logger,
		suggestionsEnabled: suggestionsEnabled,
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Post("/calculate", s.handleCalculate)
	r.Post("/suggest", s.handleSuggest)
	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", s.handleAPICalculate)
		r.Post("/suggest", s.handleAPISuggest)
	})
	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, calculatorViewData{Form: defaultFormValues()})
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in, values, err := parseCalculatorForm(r)
	if err != nil {
		metrics.RecordCalculation(metrics.CalculationInvalid)
		s.renderInvalid(w, values, err, msgFixFields)
		return
	}

	result, err := pricing.Calculate(in)
	if err != nil {
		metrics.RecordCalculation(metrics.CalculationError)
		s.render(w, http.StatusBadRequest, calculatorViewData{
			baseViewData: baseViewData{ErrorMessage: err.Error()},
			Form:         values,
		})
		return
	}

	metrics.RecordCalculation(metrics.CalculationOK)
	s.render(w, http.StatusOK, calculatorViewData{Form: values, Result: &result})
}

func (s *server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in, values, err := parseCalculatorForm(r)
	if err != nil {
		s.renderInvalid(w, values, err, msgInvalidForSuggest)
		return
	}

	outcome := s.suggester.Request(r.Context(), in)
	if !outcome.Success {
		s.render(w, http.StatusBadGateway, calculatorViewData{
			baseViewData: baseViewData{ErrorMessage: outcome.Error},
			Form:         values,
		})
		return
	}

	s.render(w, http.StatusOK, calculatorViewData{
		baseViewData: baseViewData{SuccessMessage: msgSuggestionReceived},
		Form:         values,
		Suggestion:   outcome.Suggestion,
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *server) renderInvalid(w http.ResponseWriter, values formValues, err error, message string) {
	data := calculatorViewData{
		baseViewData: baseViewData{ErrorMessage: message},
		Form:         values,
	}
	var verrs pricing.ValidationErrors
	if errors.As(err, &verrs) {
		data.Errors = verrs
	} else {
		data.ErrorMessage = err.Error()
	}
	s.render(w, http.StatusBadRequest, data)
}

func (s *server) render(w http.ResponseWriter, status int, data calculatorViewData) {
	data.SuggestionsEnabled = s.suggestionsEnabled
	if err := s.views.Render(w, status, calculatorPage, data); err != nil {
		s.logger.Error("failed to render template", zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
	}
}
