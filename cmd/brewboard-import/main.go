package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"brewboard/internal/amqp"
	"brewboard/internal/config"
	"brewboard/internal/dataset"
	"brewboard/internal/dataset/excel"
	"brewboard/internal/dataset/google"
	"brewboard/internal/storage"
)

// brewboard-import loads a transaction export into the SQLite database so the
// server can run against the sqlite backend. After a successful import it
// publishes a dataset refresh notification when AMQP is configured.
func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		fromFlag  = flag.String("from", "excel", "source to import from: excel or sheets")
		pathFlag  = flag.String("path", "", "workbook path (overrides EXCEL_PATH)")
		sheetFlag = flag.String("sheet", "", "sheet name (overrides EXCEL_SHEET / GOOGLE_SHEET_NAME)")
	)
	flag.Parse()

	cfg := config.Load()
	if *pathFlag != "" {
		cfg.ExcelPath = *pathFlag
	}
	if *sheetFlag != "" {
		cfg.ExcelSheet = *sheetFlag
		cfg.GoogleSheetName = *sheetFlag
	}

	ctx := context.Background()

	var src dataset.Source
	switch *fromFlag {
	case "excel":
		src = excel.New(cfg.ExcelPath, cfg.ExcelSheet)
	case "sheets":
		gsrc, err := google.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets source", "error", err)
			os.Exit(1)
		}
		src = gsrc
	default:
		logger.Error("Unknown import source", "from", *fromFlag)
		os.Exit(1)
	}

	txs, err := src.ReadAll(ctx)
	if err != nil {
		logger.Error("Failed to read source", "error", err)
		os.Exit(1)
	}
	signature, err := src.Signature(ctx)
	if err != nil {
		logger.Error("Failed to compute source signature", "error", err)
		os.Exit(1)
	}

	repo, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open SQLite database", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.ReplaceAll(ctx, txs, signature); err != nil {
		logger.Error("Import failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Import complete",
		"rows", len(txs),
		"signature", signature,
		"db_path", cfg.SQLiteDBPath)

	if cfg.AMQPURL == "" {
		return
	}
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("Failed to initialize AMQP client, skipping refresh notification", "error", err)
		return
	}
	defer amqpClient.Close()

	if err := amqpClient.PublishDatasetRefresh(ctx, *fromFlag, signature, len(txs)); err != nil {
		logger.Warn("Failed to publish refresh notification", "error", err)
		return
	}
	logger.Info("Published dataset refresh", "exchange", cfg.AMQPExchange)
}
