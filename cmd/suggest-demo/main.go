// README: CLI harness; drives one suggestion cycle against the real gateway.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"itinera/internal/ai"
	"itinera/internal/modules/itinerary"
	"itinera/internal/modules/suggestion"
)

func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	store := itinerary.NewStore()
	svc := itinerary.NewService(store)

	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)
	trip := svc.NewTrip("Rome, Italy", start, end, 2)

	itin, err := svc.CreateItinerary(trip, 1000)
	if err != nil {
		log.Fatalf("create itinerary: %v", err)
	}

	colosseum := svc.AddEvent(itin, "Colosseum Tour", 150, "Rome, Italy",
		start.Add(9*time.Hour), start.Add(12*time.Hour))
	svc.SetEventApproval(itin, colosseum, true)

	svc.AddEvent(itin, "Vatican Museums", 60, "Vatican City, Rome",
		start.Add(33*time.Hour), start.Add(37*time.Hour))

	fmt.Printf("Trip: %s, budget %.2f, remaining %.2f\n",
		trip.Destination, itin.Budget, svc.RemainingBudget(itin))

	suggestSvc := suggestion.NewService(provider, svc, nil, nil, nil)
	results := suggestSvc.Suggest(ctx, "demo", itin)

	if len(results) == 0 {
		fmt.Println("No suggestions survived validation (see log for reasons).")
		return
	}
	for i, s := range results {
		fmt.Printf("%d. %s (%s) @ %s: cost %.2f, %.1fh\n",
			i+1, s.Name, s.Category, s.Location, s.Cost, s.DurationHours)
	}
}
