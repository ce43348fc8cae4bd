package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"

	"github.com/acamposcar/whisper-transcriber-telegram-bot/internal/adapters/localstorage"
	"github.com/acamposcar/whisper-transcriber-telegram-bot/internal/adapters/telegram"
	"github.com/acamposcar/whisper-transcriber-telegram-bot/internal/adapters/whisper"
	"github.com/acamposcar/whisper-transcriber-telegram-bot/internal/adapters/ytdlp"
	"github.com/acamposcar/whisper-transcriber-telegram-bot/internal/service"
)

func main() {
	// Load .env if present; environment variables may be set directly.
	_ = godotenv.Load()

	outputDir := flag.String("output-dir", "transcriptions", "Directory for transcript files")
	audioDir := flag.String("audio-dir", "", "Staging directory for audio files (default: working directory)")
	snippet := flag.Bool("description-snippet", false, "Truncate video descriptions to a snippet")
	logLevel := flag.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	flag.Parse()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "transcriber-bot",
		Level: hclog.LevelFromString(*logLevel),
	})

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		logger.Error("TELEGRAM_BOT_TOKEN environment variable not set")
		os.Exit(1)
	}

	cfg := service.DefaultConfig()
	cfg.OutputDir = *outputDir
	cfg.AudioDir = *audioDir
	cfg.UseDescriptionSnippet = *snippet

	storage := localstorage.NewLocalStorage(cfg.OutputDir, cfg.AudioDir)
	if err := storage.EnsureOutputDir(); err != nil {
		logger.Error("failed to prepare output directory", "error", err)
		os.Exit(1)
	}

	fetcher := ytdlp.NewMetadataFetcher(ytdlp.MetadataOptions{
		MaxRetries:            cfg.MetadataMaxRetries,
		BaseDelay:             cfg.MetadataBaseDelay,
		UseDescriptionSnippet: cfg.UseDescriptionSnippet,
		DescriptionMaxLines:   cfg.DescriptionMaxLines,
	}, logger.Named("ytdlp"))
	downloader := ytdlp.NewAudioDownloader("", logger.Named("ytdlp"))
	transcriber := whisper.NewTranscriber("", logger.Named("whisper"))

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Error("failed to connect to Telegram", "error", err)
		os.Exit(1)
	}

	notifier := telegram.NewNotifier(api, logger.Named("telegram"))
	pipeline := service.NewPipeline(cfg, fetcher, downloader, transcriber, notifier, storage, logger.Named("pipeline"))
	bot := telegram.NewBot(api, pipeline, logger.Named("telegram"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received interrupt signal, shutting down")
		cancel()
	}()

	logger.Info("starting bot", "output_dir", storage.OutputDir())
	bot.Run(ctx)
}
