package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/flowgen/internal/api"
	"github.com/ziadkadry99/flowgen/internal/history"
	"github.com/ziadkadry99/flowgen/internal/server"
	"github.com/ziadkadry99/flowgen/internal/telemetry"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the flowchart backend API",
	Long: `Starts the backend HTTP API with GET /, POST /flowchart/mermaid and
POST /flowchart/d2. The provider credential (e.g. OPENAI_API_KEY) must be set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("port") {
			serverPort = cfg.Port
		}

		deps, err := createGeneratorFromConfig(cfg)
		if err != nil {
			return err
		}
		defer deps.Close()

		telemetry.Register()

		var requestTimeout time.Duration
		if t := cfg.CompletionTimeout(); t > 0 {
			requestTimeout = t + 10*time.Second
		}
		srv := server.New(server.Config{
			Name:           "api",
			Port:           serverPort,
			AllowAll:       cfg.AllowAllOrigins,
			RequestTimeout: requestTimeout,
			Metrics:        true,
		})

		api.RegisterRoutes(srv.Router(), deps.Generator)
		if deps.History != nil {
			history.RegisterRoutes(srv.Router(), deps.History)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			log.Info("shutting down server")
			srv.Shutdown(context.Background())
		}()

		log.WithFields(log.Fields{
			"version":  Version,
			"provider": cfg.Provider,
			"model":    cfg.Model,
			"history":  cfg.HistoryEnabled,
		}).Info("starting flowgen backend")

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8000, "Port to listen on")
	rootCmd.AddCommand(serverCmd)
}
