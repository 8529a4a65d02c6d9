//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"otakupal-be/internal/config"
	"otakupal-be/pkg/llm"
	"otakupal-be/pkg/llm/groq"
)

func main() {
	// 1. Load Config
	cfg := config.Load()
	fmt.Printf("Loaded Config > Groq Model: %s\n", cfg.Groq.Model)
	fmt.Printf("Loaded Config > Groq Base URL: %s\n", cfg.Groq.BaseURL)

	if cfg.Groq.APIKey == "" {
		log.Fatal("GROQ_API_KEY is not set")
	}

	// 2. Initialize Provider
	provider := groq.NewGroqProvider(
		cfg.Groq.APIKey,
		cfg.Groq.BaseURL,
		cfg.Groq.Model,
		time.Duration(cfg.Groq.TimeoutSeconds)*time.Second,
	)

	// 3. Run a single chat turn
	fmt.Println("\nSending test chat turn...")
	start := time.Now()
	reply, err := provider.Chat(context.Background(),
		[]llm.Message{
			{Role: "system", Content: "You are a helpful anime assistant."},
			{Role: "user", Content: "Name three classic mecha anime."},
		},
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(256),
	)
	if err != nil {
		log.Fatalf("Error calling Groq: %v", err)
	}

	fmt.Printf("Response (%v):\n%s\n", time.Since(start), reply)
}
