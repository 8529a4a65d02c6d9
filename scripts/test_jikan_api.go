//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"otakupal-be/internal/config"
	"otakupal-be/pkg/anime"
	"otakupal-be/pkg/anime/jikan"
)

func main() {
	cfg := config.Load()
	fmt.Printf("Loaded Config > Jikan URL: %s\n", cfg.Jikan.BaseURL)

	query := "Cowboy Bebop"
	if len(os.Args) > 1 {
		query = os.Args[1]
	}

	client := jikan.NewClient(cfg.Jikan.BaseURL, time.Duration(cfg.Jikan.TimeoutSeconds)*time.Second)

	fmt.Printf("\nLooking up: %q\n", query)
	data, err := client.GetAnimeData(context.Background(), query)
	if err != nil {
		log.Fatalf("Error calling Jikan: %v", err)
	}
	if data == nil {
		fmt.Println("No result found")
		return
	}

	fmt.Printf("Title: %s\n", data.Title)
	fmt.Printf("Rating: %.2f | Episodes: %d\n", data.Rating, data.Episodes)
	fmt.Printf("Genres: %v\n", data.Genres)
	fmt.Printf("Characters: %d | Staff: %d\n", len(data.Characters), len(data.Staff))

	// Also show the detector result for a natural phrasing
	phrase := fmt.Sprintf("Tell me about %s", query)
	if q, ok := anime.DetectQuery(phrase); ok {
		fmt.Printf("Detector extracted %q from %q\n", q, phrase)
	}
}
