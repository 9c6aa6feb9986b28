package cli

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/meu-mundo/meumundo/internal/api"
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to listen on (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Meu Mundo API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	db, game, cfg, err := openGame()
	if err != nil {
		return err
	}
	defer db.Close()

	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	server := api.NewServer(db, game)
	server.EnableMetrics()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("meumundo listening on %s (tz=%s)", addr, cfg.Game.Timezone)
	return http.ListenAndServe(addr, server.Handler())
}
