// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"itinera/internal/ai"
	"itinera/internal/config"
	httptransport "itinera/internal/http"
	"itinera/internal/infra"
	"itinera/internal/maps"
	"itinera/internal/modules/aiquota"
	"itinera/internal/modules/itinerary"
	"itinera/internal/modules/suggestion"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, cleanup, err := newProvider(ctx, cfg)
	if err != nil {
		log.Fatalf("ai provider init: %v", err)
	}
	defer cleanup()

	var quota suggestion.Quota
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatalf("postgres init: %v", err)
		}
		defer dbPool.Close()
		quota = aiquota.NewService(aiquota.NewStore(dbPool))
	}

	var cache suggestion.Cache
	if cfg.Redis.Addr != "" {
		cache = suggestion.NewStore(infra.NewRedis(cfg.Redis.Addr), cfg.Suggest.CacheTTL)
	}

	var resolver suggestion.Resolver
	if cfg.Maps.APIKey != "" {
		r, err := maps.NewResolver(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		resolver = r
	}

	itineraryStore := itinerary.NewStore()
	itinerarySvc := itinerary.NewService(itineraryStore)
	suggestionSvc := suggestion.NewService(provider, itinerarySvc, cache, quota, resolver)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Itinerary:    itinerarySvc,
		Suggestion:   suggestionSvc,
		QuotaEnabled: quota != nil,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("itinera-api listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func newProvider(ctx context.Context, cfg config.Config) (ai.LLMProvider, func(), error) {
	switch cfg.AI.Provider {
	case "openai":
		if cfg.AI.OpenAIKey == "" {
			log.Fatal("OPENAI_API_KEY is required when ITINERA_AI_PROVIDER=openai")
		}
		return ai.NewOpenAIProvider(cfg.AI.OpenAIKey), func() {}, nil
	default:
		if cfg.AI.GeminiKey == "" {
			log.Fatal("GEMINI_API_KEY environment variable not set")
		}
		p, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	}
}
