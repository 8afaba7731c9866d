package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"quotereel/api"
	"quotereel/config"
	"quotereel/kafka"
	"quotereel/pipeline"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginTop(1).
			MarginBottom(1)

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))
)

func main() {
	quoteCount := flag.Int("quotes", config.DefaultQuoteCount, "Number of quotes to use")
	duration := flag.Int("duration", config.DefaultDurationSeconds, "Duration per quote in seconds")
	doUpload := flag.Bool("upload", false, "Upload to YouTube when done")
	customAudio := flag.Bool("custom-audio", true, "Use custom audio from the audio directory")
	audioFile := flag.String("audio-file", "", "Specific audio file to use (place in audio directory)")
	serveMode := flag.Bool("serve", false, "Run as an HTTP API server instead of a one-shot pipeline")
	kafkaMode := flag.Bool("kafka", false, "Run as a Kafka consumer instead of a one-shot pipeline")
	apiPort := flag.String("port", ":8081", "API server port (serve mode)")
	flag.Parse()

	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := config.FromEnv()
	ctx := context.Background()

	fmt.Println(bannerStyle.Render("QUOTEREEL  |  quote video generator"))

	proc, err := pipeline.NewProcessor(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize processor: %v", err)
	}

	if *serveMode {
		log.Println("Running in API mode")
		server := api.NewServer(proc)
		log.Printf("API server listening on %s", *apiPort)
		log.Println("Endpoints:")
		log.Println("  POST /api/generate  - start a generation job")
		log.Println("  GET  /api/health    - health check")
		if err := http.ListenAndServe(*apiPort, server.NewRouter()); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	if *kafkaMode {
		log.Println("Running in Kafka consumer mode")
		kafkaCfg := kafka.ConsumerConfig{
			Brokers:   kafka.Brokers(),
			Topic:     kafka.Topic(),
			GroupID:   kafka.GroupID(),
			Processor: proc,
		}
		log.Printf("Kafka brokers: %v", kafkaCfg.Brokers)
		log.Printf("Topic: %s", kafkaCfg.Topic)
		log.Printf("Consumer group: %s", kafkaCfg.GroupID)
		if err := kafka.StartWithGracefulShutdown(kafkaCfg); err != nil {
			log.Fatalf("Kafka consumer failed: %v", err)
		}
		return
	}

	job := pipeline.DefaultJob()
	job.QuoteCount = *quoteCount
	job.DurationSeconds = *duration
	job.Upload = *doUpload
	job.CustomAudio = *customAudio
	job.AudioFile = *audioFile

	result, err := proc.Run(ctx, job)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	summary := fmt.Sprintf("Process completed successfully!\nQuotes: %d\nVideo:  %s",
		result.QuoteCount, result.VideoPath)
	if result.VideoID != "" {
		summary += fmt.Sprintf("\nYouTube: https://www.youtube.com/watch?v=%s", result.VideoID)
	}
	fmt.Println(summaryStyle.Render(successStyle.Render(summary)))
}
