// Package main implements the TruckScout API server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/TruckScoutAI/truckscout-engine/engine/convo"
	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
	"github.com/TruckScoutAI/truckscout-engine/engine/listing"
	"github.com/TruckScoutAI/truckscout-engine/engine/market"
	"github.com/TruckScoutAI/truckscout-engine/engine/match"
	"github.com/TruckScoutAI/truckscout-engine/engine/nlp"
	"github.com/TruckScoutAI/truckscout-engine/engine/pricing"
	"github.com/TruckScoutAI/truckscout-engine/engine/quality"
	"github.com/TruckScoutAI/truckscout-engine/engine/semantic"
	"github.com/TruckScoutAI/truckscout-engine/pkg/llm"
	"github.com/TruckScoutAI/truckscout-engine/pkg/metrics"
	"github.com/TruckScoutAI/truckscout-engine/pkg/mid"
)

// Config holds all environment-based configuration.
type Config struct {
	Port       string
	OllamaURL  string
	ChatModel  string
	EmbedModel string
	NATSURL    string
	Neo4jURL   string
	Neo4jUser  string
	Neo4jPass  string
	QdrantURL  string
	Collection string
	CORSOrigin string
	SeedDemo   bool
}

func loadConfig() Config {
	return Config{
		Port:       envOr("PORT", "8080"),
		OllamaURL:  os.Getenv("OLLAMA_URL"), // empty disables the completion service
		ChatModel:  envOr("CHAT_MODEL", "llama3.1:8b"),
		EmbedModel: envOr("EMBED_MODEL", "nomic-embed-text"),
		NATSURL:    os.Getenv("NATS_URL"),
		Neo4jURL:   os.Getenv("NEO4J_URL"),
		Neo4jUser:  envOr("NEO4J_USER", "neo4j"),
		Neo4jPass:  envOr("NEO4J_PASS", "password"),
		QdrantURL:  os.Getenv("QDRANT_URL"),
		Collection: envOr("QDRANT_COLLECTION", "truckscout-listings"),
		CORSOrigin: envOr("CORS_ORIGIN", "*"),
		SeedDemo:   envOr("SEED_DEMO", "true") == "true",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := loadConfig()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Completion service (optional) ---
	llmOpts := llm.DefaultOptions()
	llmOpts.BaseURL = cfg.OllamaURL
	llmOpts.ChatModel = cfg.ChatModel
	llmOpts.EmbedModel = cfg.EmbedModel
	llmClient := llm.New(llmOpts)
	if llmClient.Enabled() {
		logger.Info("completion service enabled", "url", cfg.OllamaURL, "model", cfg.ChatModel)
	}

	// --- Listings ---
	store := listing.NewMemoryStore()
	if cfg.SeedDemo {
		store.Add(listing.DemoFleet()...)
		logger.Info("seeded demo fleet", "listings", store.Len())
	}

	// --- Intelligence components ---
	analyzer := nlp.NewAnalyzer(llmClient, logger)
	predictor := pricing.NewPredictor(pricing.DefaultConfig(), logger)
	assessor := quality.NewAssessor(quality.DefaultConfig(), llmClient, logger)
	registry := metrics.New()

	deps := convo.Deps{
		Understander: analyzer,
		Listings:     store,
		Pricer:       predictor,
		Quality:      assessor,
		Phraser:      llmClient,
		Embedder:     llmClient,
		Metrics:      registry,
	}

	// --- NATS (optional) ---
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("truckscout-api"))
		if err != nil {
			return fmt.Errorf("nats connect: %w", err)
		}
		defer nc.Drain()
		deps.Events = convo.NewNATSPublisher(nc)
		logger.Info("turn events enabled", "url", cfg.NATSURL)
	}

	// --- Neo4j market graph (optional) ---
	if cfg.Neo4jURL != "" {
		driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURL, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPass, ""))
		if err != nil {
			return fmt.Errorf("neo4j driver: %w", err)
		}
		defer driver.Close(ctx)
		graph := market.New(driver)
		deps.Market = graph
		logger.Info("market graph enabled", "url", cfg.Neo4jURL)
		if cfg.SeedDemo {
			if err := seedMarketGraph(ctx, graph); err != nil {
				logger.Warn("market graph seeding failed, insights stay unenriched", "err", err)
			}
		}
	}

	// --- Qdrant semantic search (optional) ---
	if cfg.QdrantURL != "" {
		vectors, err := semantic.New(cfg.QdrantURL, cfg.Collection)
		if err != nil {
			return fmt.Errorf("qdrant connect: %w", err)
		}
		defer vectors.Close()
		deps.Semantic = vectors
		logger.Info("semantic search enabled", "url", cfg.QdrantURL, "collection", cfg.Collection)
		if cfg.SeedDemo && llmClient.Enabled() {
			if err := indexListings(ctx, vectors, llmClient, listing.DemoFleet()); err != nil {
				logger.Warn("demo fleet indexing failed, feature search degrades to keywords", "err", err)
			} else {
				logger.Info("demo fleet indexed", "collection", cfg.Collection)
			}
		}
	}

	dispatcher := convo.NewDispatcher(deps, convo.DefaultOptions(), logger)

	// --- HTTP server ---
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", handleHealth(dispatcher, store))
	mux.HandleFunc("POST /api/chat", handleChat(dispatcher, logger))
	mux.HandleFunc("POST /api/understand", handleUnderstand(analyzer))
	mux.HandleFunc("POST /api/price", handlePrice(predictor, logger))
	mux.HandleFunc("POST /api/quality", handleQuality(assessor, logger))
	mux.HandleFunc("POST /api/match", handleMatch(store, logger))
	mux.Handle("GET /metrics", registry.Handler())

	handler := mid.Chain(mux,
		mid.Recover(logger),
		mid.Logger(logger),
		mid.CORS(cfg.CORSOrigin),
		mid.OTel("truckscout-api"),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful shutdown ---
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

// indexListings embeds listing descriptions and upserts them into the vector
// store so feature search has points to match against.
func indexListings(ctx context.Context, vectors *semantic.Store, embedder *llm.Client, fleet []domain.VehicleFeatures) error {
	if len(fleet) == 0 {
		return nil
	}
	records := make([]semantic.ListingRecord, 0, len(fleet))
	dims := 0
	for _, v := range fleet {
		emb, err := embedder.Embed(ctx, v.Description)
		if err != nil {
			return fmt.Errorf("embed listing %s: %w", v.ID, err)
		}
		dims = len(emb)
		records = append(records, semantic.ListingRecord{
			ID:          v.ID,
			Embedding:   emb,
			Brand:       v.Brand,
			Category:    string(v.Category),
			Description: v.Description,
			Price:       v.Price,
		})
	}
	if err := vectors.EnsureCollection(ctx, dims); err != nil {
		return err
	}
	return vectors.Upsert(ctx, records)
}

// seedMarketGraph populates brand nodes and competitor edges for the demo
// inventory so market-insight replies have a graph to enrich from.
func seedMarketGraph(ctx context.Context, graph *market.Graph) error {
	brands := []market.Brand{
		{Name: "Mercedes-Benz", Country: "Germany", MarketShare: 0.21},
		{Name: "Scania", Country: "Sweden", MarketShare: 0.17},
		{Name: "Volvo", Country: "Sweden", MarketShare: 0.16},
		{Name: "MAN", Country: "Germany", MarketShare: 0.15},
		{Name: "DAF", Country: "Netherlands", MarketShare: 0.14},
		{Name: "Iveco", Country: "Italy", MarketShare: 0.09},
		{Name: "Renault Trucks", Country: "France", MarketShare: 0.08},
	}
	for _, b := range brands {
		if err := graph.SaveBrand(ctx, b); err != nil {
			return err
		}
	}
	relations := [][2]string{
		{"Mercedes-Benz", "Scania"}, {"Mercedes-Benz", "Volvo"}, {"Mercedes-Benz", "MAN"},
		{"Scania", "Volvo"}, {"MAN", "DAF"}, {"DAF", "Iveco"}, {"Iveco", "Renault Trucks"},
	}
	for _, r := range relations {
		if err := graph.RelateBrands(ctx, r[0], r[1]); err != nil {
			return err
		}
	}
	return nil
}

// --- Handlers ---

func handleHealth(d *convo.Dispatcher, store *listing.MemoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"listings": store.Len(),
			"sessions": d.Sessions().Len(),
		})
	}
}

// ChatRequest is the JSON body for POST /api/chat.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func handleChat(d *convo.Dispatcher, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}

		reply, err := d.Respond(r.Context(), req.SessionID, req.Message)
		if err != nil {
			logger.Error("respond failed", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, reply)
	}
}

// UnderstandRequest is the JSON body for POST /api/understand.
type UnderstandRequest struct {
	Text    string      `json:"text"`
	Context nlp.Context `json:"context"`
}

func handleUnderstand(analyzer *nlp.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UnderstandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		writeJSON(w, http.StatusOK, analyzer.Understand(r.Context(), req.Text, req.Context))
	}
}

// PriceRequest is the JSON body for POST /api/price.
type PriceRequest struct {
	Vehicle domain.VehicleFeatures `json:"vehicle"`
	History []pricing.PricePoint   `json:"history,omitempty"`
}

func handlePrice(p *pricing.Predictor, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PriceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		pred, err := p.Predict(r.Context(), req.Vehicle, req.History)
		if err != nil {
			status, msg := domainErrorStatus(err)
			if status == http.StatusInternalServerError {
				logger.Error("prediction failed", "err", err)
			}
			writeError(w, status, msg)
			return
		}
		writeJSON(w, http.StatusOK, pred)
	}
}

// QualityRequest is the JSON body for POST /api/quality.
type QualityRequest struct {
	Vehicle domain.VehicleFeatures     `json:"vehicle"`
	Images  []string                   `json:"images,omitempty"`
	History []domain.MaintenanceRecord `json:"history,omitempty"`
}

func handleQuality(a *quality.Assessor, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QualityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		assessment, err := a.Assess(r.Context(), req.Vehicle, req.Images, req.History)
		if err != nil {
			status, msg := domainErrorStatus(err)
			if status == http.StatusInternalServerError {
				logger.Error("assessment failed", "err", err)
			}
			writeError(w, status, msg)
			return
		}
		writeJSON(w, http.StatusOK, assessment)
	}
}

// MatchRequest is the JSON body for POST /api/match. Exactly one of
// Reference and Preferences should be set; Reference wins when both are.
type MatchRequest struct {
	Reference   *domain.VehicleFeatures `json:"reference,omitempty"`
	Preferences *match.Preferences      `json:"preferences,omitempty"`
	Limit       int                     `json:"limit,omitempty"`
}

func handleMatch(store listing.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Reference == nil && req.Preferences == nil {
			writeError(w, http.StatusBadRequest, "reference or preferences is required")
			return
		}

		candidates, err := store.Find(r.Context(), listing.Filter{})
		if err != nil {
			logger.Error("candidate lookup failed", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		var ranked []match.Candidate
		if req.Reference != nil {
			ranked = match.RankBySimilarity(*req.Reference, candidates)
		} else {
			ranked = match.RankByPreferences(*req.Preferences, candidates)
		}
		if req.Limit > 0 && len(ranked) > req.Limit {
			ranked = ranked[:req.Limit]
		}
		writeJSON(w, http.StatusOK, map[string]any{"candidates": ranked})
	}
}

// domainErrorStatus maps component errors onto HTTP semantics: validation
// problems are the caller's fault, a failed ensemble is a 422, anything
// else is internal.
func domainErrorStatus(err error) (int, string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, pricing.ErrNoEstimate):
		return http.StatusUnprocessableEntity, "no reliable estimate for this vehicle"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
