package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/rfp-evaluator/internal/app"
	"alfredoptarigan/rfp-evaluator/internal/config"
	"alfredoptarigan/rfp-evaluator/internal/logger"
	"alfredoptarigan/rfp-evaluator/internal/services"
)

type ingestSummary struct {
	Ingested  int
	Pending   int
	Failed    int
	Decisions map[string]int
}

func main() {
	var debug bool

	cmd := &cobra.Command{
		Use:          "ingest_documents [DIR]",
		Short:        "Ingest every RFP document in a directory (default ./rfps)",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "./rfps"
			if len(args) == 1 {
				dir = args[0]
			}

			cfg := config.Load()
			log, err := logger.New(cfg.Log.JSON, debug || cfg.Log.Debug)
			if err != nil {
				return fmt.Errorf("creating a logger: %w", err)
			}
			defer log.Sync() //nolint:errcheck

			return ingestDir(cmd.Context(), cfg, log, dir)
		},
	}
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func ingestDir(ctx context.Context, cfg *config.Config, log *zap.Logger, dir string) error {
	files, err := listDocuments(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Warn("no supported documents found", zap.String("dir", dir), zap.Strings("types", services.SupportedFileTypes))
		return nil
	}

	core, err := app.NewCore(cfg, log)
	if err != nil {
		return err
	}
	defer core.Close()

	ingestion, err := core.NewIngestion(ctx)
	if err != nil {
		return err
	}

	summary := ingestSummary{Decisions: map[string]int{}}
	for i, path := range files {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fileLog := log.With(zap.String("file", filepath.Base(path)), zap.Int("index", i+1), zap.Int("total", len(files)))

		stored, err := ingestion.Storage.SaveFromPath(path)
		if err != nil {
			fileLog.Error("failed to store document", zap.Error(err))
			summary.Failed++
			continue
		}

		result, err := ingestion.Pipeline.Process(ctx, stored, filepath.Base(path))
		switch {
		case err == nil:
			summary.Ingested++
			summary.Decisions[string(result.Evaluation.Decision)]++
			fileLog.Info("document ingested",
				zap.String(logger.FieldDocumentID, result.Document.ID.String()),
				zap.String(logger.FieldDecision, string(result.Evaluation.Decision)),
				zap.Float64("overall_fit_score", result.Evaluation.OverallFitScore),
			)
		case result != nil:
			// Stored but not evaluated; the API worker picks it up later.
			summary.Pending++
			fileLog.Warn("document stored without evaluation",
				zap.String(logger.FieldDocumentID, result.Document.ID.String()),
				zap.Error(err),
			)
		default:
			summary.Failed++
			fileLog.Error("failed to ingest document", zap.Error(err))
			if delErr := ingestion.Storage.DeleteFile(stored.Filename); delErr != nil {
				fileLog.Warn("failed to remove stored copy", zap.Error(delErr))
			}
		}
	}

	log.Info("ingestion finished",
		zap.Int("ingested", summary.Ingested),
		zap.Int("pending", summary.Pending),
		zap.Int("failed", summary.Failed),
		zap.Any("decisions", summary.Decisions),
	)

	if summary.Failed > 0 {
		return errors.New("some documents failed to ingest")
	}
	return nil
}

func listDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !services.IsSupportedFileType(services.FileTypeOf(entry.Name())) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
