package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/streamrelay/relay/pkg/config"
	"github.com/streamrelay/relay/pkg/signaling"
)

const shutdownTimeout = 10 * time.Second

var (
	flagEnvFile           string
	flagListen            string
	flagPath              string
	flagOrigins           string
	flagNotifyDisconnect  bool
	flagStrictNegotiation bool
	flagSTUN              string
	flagTURN              string
	flagTURNUser          string
	flagTURNPass          string
	flagTURNOnly          bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the signaling relay",
	Long: `Run the signaling relay. Flags override RELAY_* environment variables,
which override the built-in defaults. A .env file in the working directory is
read if present.

Examples:
  streamrelay serve
  streamrelay serve --listen :8080 --origins "https://*.example.com"
  streamrelay serve --turn turn:turn.example.com:3478 --turn-user u --turn-pass p --turn-only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := config.Options{
			EnvFile:        flagEnvFile,
			ListenAddr:     flagListen,
			WebsocketPath:  flagPath,
			AllowedOrigins: flagOrigins,
			STUNServers:    flagSTUN,
			TURNServers:    flagTURN,
			TURNUsername:   flagTURNUser,
			TURNCredential: flagTURNPass,
		}
		if cmd.Flags().Changed("notify-disconnect") {
			opts.NotifyDisconnect = &flagNotifyDisconnect
		}
		if cmd.Flags().Changed("strict") {
			opts.StrictNegotiation = &flagStrictNegotiation
		}
		if cmd.Flags().Changed("turn-only") {
			opts.TURNOnly = &flagTURNOnly
		}

		cfg, err := config.Load(opts)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	s := signaling.Initialize(cfg)
	app := signaling.NewApp(s)

	errs := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s, websocket endpoint %s", cfg.ListenAddr, cfg.WebsocketPath)
		errs <- app.Listen(cfg.ListenAddr)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Print("Shutting down")
	return app.ShutdownWithTimeout(shutdownTimeout)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.StringVar(&flagEnvFile, "env-file", "", "Load environment variables from this file")
	flags.StringVarP(&flagListen, "listen", "l", "", "Address to listen on (default :3000)")
	flags.StringVar(&flagPath, "path", "", "Websocket endpoint path (default /ws)")
	flags.StringVar(&flagOrigins, "origins", "", "Comma separated allowed origins, * wildcards allowed (default *)")
	flags.BoolVar(&flagNotifyDisconnect, "notify-disconnect", false, "Send userDisconnected to room members when a peer drops")
	flags.BoolVar(&flagStrictNegotiation, "strict", false, "Drop offers, answers and candidates that don't parse")
	flags.StringVar(&flagSTUN, "stun", "", "Comma separated STUN server URLs")
	flags.StringVar(&flagTURN, "turn", "", "Comma separated TURN server URLs")
	flags.StringVar(&flagTURNUser, "turn-user", "", "TURN username")
	flags.StringVar(&flagTURNPass, "turn-pass", "", "TURN credential")
	flags.BoolVar(&flagTURNOnly, "turn-only", false, "Advertise TURN servers only and restrict clients to relay candidates")
}
