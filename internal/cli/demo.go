// demo.go implements the "byetax demo-server" command, a local backend
// with sample data for trying the client without the real service.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/byetax/byetax/internal/demo"
	"github.com/byetax/byetax/internal/log"
)

var (
	demoAddr string
	demoSeed string
)

var demoServerCmd = &cobra.Command{
	Use:   "demo-server",
	Short: "Run a local demo backend with sample data",
	Long: `Serve the ByeTax backend API from memory.

With --seed <nickname> a user is created with one sample analysis and its
token is printed, ready for: byetax --token <token>`,
	RunE: runDemoServer,
}

func init() {
	demoServerCmd.Flags().StringVar(&demoAddr, "addr", ":8000", "Listen address")
	demoServerCmd.Flags().StringVar(&demoSeed, "seed", "", "Create a user with a sample analysis")
}

func runDemoServer(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	gin.SetMode(gin.ReleaseMode)
	s := demo.NewServer(e.log.Zap())

	out := cmd.OutOrStdout()
	if demoSeed != "" {
		token := s.Login(demoSeed)
		id := s.Seed(s.UserID(token), demo.SampleAnalysis())
		fmt.Fprintf(out, "Seeded analysis #%d for %s\n", id, demoSeed)
		fmt.Fprintf(out, "Token: %s\n", token)
	}

	server := &http.Server{
		Addr:              demoAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 20 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	e.log.Event(log.EventDemoServer, zap.String("addr", demoAddr))
	fmt.Fprintf(out, "Demo backend listening on %s\n", demoAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("demo server: %w", err)
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down demo server: %w", err)
	}
	return nil
}
