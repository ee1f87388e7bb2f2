package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/portfolio/internal/audit"
	"github.com/ziadkadry99/portfolio/internal/auth"
	"github.com/ziadkadry99/portfolio/internal/config"
	"github.com/ziadkadry99/portfolio/internal/contact"
	"github.com/ziadkadry99/portfolio/internal/content"
	"github.com/ziadkadry99/portfolio/internal/db"
	"github.com/ziadkadry99/portfolio/internal/markdown"
	"github.com/ziadkadry99/portfolio/internal/navsession"
	"github.com/ziadkadry99/portfolio/internal/notifications"
	"github.com/ziadkadry99/portfolio/internal/projects"
	"github.com/ziadkadry99/portfolio/internal/server"
	"github.com/ziadkadry99/portfolio/internal/site"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the portfolio web server",
	Long:  `Starts the portfolio server: the rendered site, the navigation websocket, the contact API and the admin API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		md := markdown.New()
		lib, err := loadContent(cfg, md)
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Port:           cfg.Port,
			AllowAll:       cfg.AllowAllOrigins,
			AllowedOrigins: cfg.AllowedOrigins,
			MaxBodyBytes:   cfg.MaxBodyBytes,
		}, database, logger)

		if err := registerAllRoutes(srv, cfg, database, lib, md, logger); err != nil {
			return err
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		logger.Info("portfolio server starting",
			zap.String("version", Version),
			zap.Int("port", cfg.Port),
			zap.String("database", database.Path()),
			zap.Strings("sections", lib.IDs()),
			zap.String("submission_mode", string(cfg.Submission.Mode)),
			zap.Int("webhooks", len(cfg.Notifications.Webhooks)))

		return srv.Start()
	},
}

// registerAllRoutes wires every feature package onto the server router.
func registerAllRoutes(srv *server.Server, cfg *config.Config, database *db.DB, lib *content.Library, md *markdown.Renderer, logger *zap.Logger) error {
	r := srv.Router()

	// Admin API tokens, with every mutating admin call recorded.
	tokenStore := auth.NewStore(database)
	auditStore := audit.NewStore(database)
	requireAdmin := auth.Middleware(tokenStore, auth.ScopeAdmin)
	recordAdmin := audit.Middleware(auditStore, logger.Named("audit"))
	admin := func(next http.Handler) http.Handler {
		return requireAdmin(recordAdmin(next))
	}
	audit.RegisterRoutes(r, auditStore, admin)

	// Projects
	projectStore := projects.NewStore(database, md)
	projects.RegisterRoutes(r, projectStore)

	// Notifications
	notifStore := notifications.NewStore(database)
	notifDispatcher := notifications.NewDispatcher(notifStore, cfg.Notifications.Webhooks, logger.Named("notifications"))
	notifications.RegisterRoutes(r, notifStore, notifDispatcher, admin)

	// Contact
	contactStore := contact.NewStore(database)
	submitter := newSubmitter(cfg, contactStore, notifDispatcher, logger.Named("contact"))
	contact.RegisterRoutes(r, submitter, contactStore, admin)

	// Navigation session, registered outside the request timeout.
	navsession.New(lib, navsession.Config{
		DefaultSection:  cfg.Site.DefaultSection,
		AllowAllOrigins: cfg.AllowAllOrigins,
	}, logger).RegisterRoutes(srv.LongLived())

	// Rendered site
	pages, err := site.New(site.Config{
		Title:          cfg.Site.Title,
		Author:         cfg.Site.Author,
		Tagline:        cfg.Site.Tagline,
		DefaultSection: cfg.Site.DefaultSection,
	}, lib, projectStore, submitter, logger)
	if err != nil {
		return err
	}
	pages.RegisterRoutes(r)
	r.NotFound(pages.NotFound)

	return nil
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
