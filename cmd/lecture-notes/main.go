package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/comparison"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/config"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/gemini"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/live"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/notes"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/preprocess"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/transcriber"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/translator"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/watcher"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/pkg/executor"
)

const usage = `Usage: lecture-notes [-config config.yaml] <command>

Commands:
  clean        remove silent stretches from the configured recording
  transcribe   transcribe the configured media file
  notes        generate study notes from a transcript
  translate    translate the notes HTML into the target language
  compare      render the side-by-side comparison view
  live         live-transcribe from an audio capture device
  watch        watch a drop directory and transcribe new recordings

Each command is one complete batch run over the paths in the
configuration document. Gemini API keys come from GOOGLE_API_KEY
(comma-separated for rotation), loadable from a .env file.
`

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration document")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	// Optional; real environments set GOOGLE_API_KEY directly.
	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateStage(command); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, command, cfg, log); err != nil {
		log.Error(ctx, "%s failed: %v", command, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, cfg *config.Config, log logger.Logger) error {
	exec := executor.New()

	switch command {
	case "clean":
		p := preprocess.New(&cfg.Preprocess, exec, log)
		return p.Process(ctx, cfg.Preprocess.InputPath, cfg.Preprocess.OutputPath)

	case "transcribe":
		rec := transcriber.NewWhisperRecognizer(&cfg.Whisper, exec, log)
		t := transcriber.New(cfg, exec, rec, log)
		_, err := t.Transcribe(ctx, cfg.Transcriber.MediaPath)
		return err

	case "notes":
		model, err := newGeminiModel(cfg, log)
		if err != nil {
			return err
		}
		_, err = notes.New(model, log).Generate(ctx, cfg.Notes.TranscriptBase)
		return err

	case "translate":
		model, err := newGeminiModel(cfg, log)
		if err != nil {
			return err
		}
		target := cfg.TargetLanguage()
		engine := translator.NewGeminiEngine(model, target)
		t := translator.New(target, cfg.Translator.BatchSize, engine, log)
		return t.Translate(ctx, cfg.Translator.InputPath, cfg.Translator.OutputPath)

	case "compare":
		r := comparison.New(log)
		return r.Render(ctx, cfg.Comparison.OriginalPath, cfg.Comparison.TranslatedPath, cfg.Comparison.OutputPath)

	case "live":
		capt := live.NewFFmpegCapturer(&cfg.Live, &cfg.FFmpeg, exec, log)
		rec := transcriber.NewWhisperRecognizer(&cfg.Whisper, exec, log)
		_, err := live.New(&cfg.Live, capt, rec, log).Run(ctx)
		return err

	case "watch":
		rec := transcriber.NewWhisperRecognizer(&cfg.Whisper, exec, log)
		t := transcriber.New(cfg, exec, rec, log)
		handler := func(ctx context.Context, mediaPath string) error {
			_, err := t.Transcribe(ctx, mediaPath)
			return err
		}
		w, err := watcher.New(cfg.Transcriber.WatchDir, handler, log, 2)
		if err != nil {
			return err
		}
		defer w.Stop()
		if err := w.Start(ctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q (run without arguments for usage)", command)
	}
}

func newGeminiModel(cfg *config.Config, log logger.Logger) (gemini.Model, error) {
	return gemini.New(gemini.KeysFromEnv(), cfg.Gemini.Model, log)
}
