// Package devserver implements the "devserver" command, which serves a
// local in-memory inventory API for demos and development.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nathanbeddoewebdev/opsdeck/cmd/commands/crud"
	"nathanbeddoewebdev/opsdeck/internal/devserver"
	"nathanbeddoewebdev/opsdeck/internal/logging"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

// NewCommand returns the "devserver" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local inventory API with demo data",
		Long: "Serve an in-memory inventory API at " + devserver.DefaultPrefix + " so opsdeck can be\n" +
			"tried without a backend. Changes are lost when the server stops.\n\n" +
			"Examples:\n" +
			"  opsdeck devserver\n" +
			"  opsdeck devserver --addr :9000 --seed fixtures.yaml\n" +
			"  OPSDECK_API_URL=http://localhost:8000/api/v1 opsdeck server list",
		Args:         cobra.NoArgs,
		Annotations:  map[string]string{crud.AnnotationStandalone: "true"},
		SilenceUsage: true,
		RunE:         run,
	}

	cmd.Flags().String("addr", "localhost:8000", "Address to listen on")
	cmd.Flags().String("seed", "", "YAML file with the initial inventory (default: bundled demo data)")
	cmd.Flags().Bool("empty", false, "Start with no records")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	seedPath, _ := cmd.Flags().GetString("seed")
	empty, _ := cmd.Flags().GetBool("empty")
	if empty && seedPath != "" {
		return fmt.Errorf("--empty and --seed cannot be used together")
	}

	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = "info"
	}
	logger, closeLog, err := logging.New(logging.Options{Level: level, Stderr: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	defer closeLog()

	handler, err := newHandler(seedPath, empty, logger)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving inventory API at http://%s%s (Ctrl+C to stop)\n", ln.Addr(), devserver.DefaultPrefix)
	return serve(ctx, ln, handler, logger)
}

func newHandler(seedPath string, empty bool, logger zerolog.Logger) (http.Handler, error) {
	opts := []devserver.Option{devserver.WithLogger(logger)}
	if !empty {
		var (
			seed *devserver.Seed
			err  error
		)
		if seedPath != "" {
			seed, err = devserver.LoadSeed(seedPath)
		} else {
			seed, err = devserver.DefaultSeed()
		}
		if err != nil {
			return nil, err
		}
		opts = append(opts, devserver.WithSeed(seed))
	}
	return devserver.New(devserver.DefaultPrefix, opts...), nil
}

// serve runs until ctx is done, then drains in-flight requests.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
