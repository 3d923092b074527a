package commands

import (
	"os"

	"github.com/go-kit/log"
	"github.com/spf13/cobra"

	nhttp "net/http"

	"go-tour-compare/catalog"
	"go-tour-compare/currency"
	"go-tour-compare/http"
	"go-tour-compare/session"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the pricing and comparison API",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := log.NewSyncWriter(os.Stderr)
			logger := log.NewLogfmtLogger(w)
			logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

			registry, err := cfg.Registry()
			if err != nil {
				logger.Log("msg", "invalid currency table", "err", err)
				return err
			}

			// cache lifetime spans the whole server, not any one request
			ctx := cmd.Context()

			catalogService := catalog.NewService(cfg.CatalogURL)
			catalogService = catalog.NewLoggingService(log.With(logger, "component", "catalog_rest"), catalogService)
			catalogService = catalog.NewCachingService(ctx, cfg.CatalogRefresh, catalogService)
			catalogService = catalog.NewLoggingService(log.With(logger, "component", "catalog_cache"), catalogService)

			currencyService := currency.NewService(registry)
			currencyService = currency.NewLoggingService(log.With(logger, "component", "currency"), currencyService)

			var store session.Store = session.NopStore{}
			if cfg.StorePath != "" {
				sqlStore, err := session.OpenSQLStore(cfg.StorePath)
				if err != nil {
					logger.Log("msg", "opening session store failed", "path", cfg.StorePath, "err", err)
					return err
				}
				defer sqlStore.Close()
				store = sqlStore
			}

			sessions := session.NewManager(registry, store, cfg.MaxCompare, cfg.SessionTTL, log.With(logger, "component", "session"))

			handler := http.NewServer(http.Config{
				Catalog:       catalogService,
				Currency:      currencyService,
				Sessions:      sessions,
				ListingURL:    cfg.ListingURL,
				DefaultLocale: cfg.DefaultLocale,
				Logger:        log.With(logger, "component", "http"),
			})

			logger.Log("msg", "listening", "addr", cfg.ListenAddr)
			return nhttp.ListenAndServe(cfg.ListenAddr, handler)
		},
	}
}
