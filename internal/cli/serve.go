package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ducdmdev/prrisk/internal/api"
	"github.com/ducdmdev/prrisk/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the analysis engine.

Endpoints:
  GET  /health       — Health check
  POST /api/analyze  — Run analysis on a repository
  GET  /api/ws       — WebSocket streaming analysis progress`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "127.0.0.1", "address to listen on")
	serveCmd.Flags().IntP("port", "p", 8917, "port to listen on")
	serveCmd.Flags().StringP("config", "c", "", "path to config file")
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath, ".")
	if err != nil {
		return err
	}

	listen := cfg.Server.Addr
	if cmd.Flags().Changed("addr") || cmd.Flags().Changed("port") || listen == "" {
		addr, _ := cmd.Flags().GetString("addr")
		port, _ := cmd.Flags().GetInt("port")
		listen = fmt.Sprintf("%s:%d", addr, port)
	}

	srv := api.New(listen)
	return srv.ListenAndServe()
}
