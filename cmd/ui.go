package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/flowgen/internal/server"
	"github.com/ziadkadry99/flowgen/internal/ui"
)

var uiPort int

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Start the browser frontend",
	Long: `Starts the web frontend. It talks to the backend at API_URL
(default http://localhost:8000) and never calls the LLM itself.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("port") {
			uiPort = cfg.UIPort
		}

		backend := createBackendClient(cfg)
		srv := server.New(server.Config{
			Name:     "ui",
			Port:     uiPort,
			AllowAll: cfg.AllowAllOrigins,
		})
		ui.New(backend).RegisterRoutes(srv.Router())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			log.Info("shutting down ui")
			srv.Shutdown(context.Background())
		}()

		log.WithFields(log.Fields{
			"version": Version,
			"api_url": backend.BaseURL(),
		}).Info("starting flowgen ui")

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	uiCmd.Flags().IntVar(&uiPort, "port", 8501, "Port to listen on")
	rootCmd.AddCommand(uiCmd)
}
