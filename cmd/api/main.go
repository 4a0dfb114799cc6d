package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/application/quotes"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/application/syncdrive"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/repository"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/infrastructure/badgerstore"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/infrastructure/drive"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/infrastructure/excel"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/infrastructure/memstore"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/infrastructure/pdf"
	httpRouter "github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/interfaces/http"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/pkg/config"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	var (
		quoteRepo   repository.QuoteRepository
		settingRepo repository.SettingRepository
		catalogRepo repository.CatalogRepository
		outboxRepo  repository.OutboxRepository
	)
	switch cfg.Store.Driver {
	case "memory":
		m := memstore.New()
		quoteRepo, settingRepo, catalogRepo, outboxRepo = m.Quotes(), m.Settings(), m.Catalog(), m.Outbox()
	default:
		store, err := badgerstore.Open(cfg.Store.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir store")
		}
		defer func() { _ = store.Close() }()
		quoteRepo = badgerstore.NewQuoteRepository(store)
		settingRepo = badgerstore.NewSettingRepository(store)
		catalogRepo = badgerstore.NewCatalogRepository(store)
		outboxRepo = badgerstore.NewOutboxRepository(store)
	}

	quotesUC := quotes.NewUseCase(quoteRepo, settingRepo, catalogRepo, outboxRepo, cfg.Quotes.SeqFloor)
	pdfGen := pdf.NewMarotoQuotePDF(cfg.Business)
	xlsxGen := excel.NewExcelizeWorkbooks()

	deps := httpRouter.RouterDeps{
		QuotesUC: quotesUC,
		PDF:      pdfGen,
		XLSX:     xlsxGen,
	}

	// Variante con sincronización: solo si hay credenciales de Drive.
	if cfg.Drive.ClientID != "" {
		uploader := drive.NewUploader(cfg.Drive)
		deps.Uploader = uploader
		deps.SyncUC = syncdrive.NewUseCase(
			quotesUC, quoteRepo, settingRepo, outboxRepo,
			pdfGen, xlsxGen, uploader,
			cfg.Drive.FolderName, log,
		)
	} else {
		log.Warn().Msg("sin DRIVE_CLIENT_ID: sincronización deshabilitada")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
