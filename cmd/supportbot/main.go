package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	chiTransport "github.com/fundedfolk/supportbot/internal/transport/chi"
	"github.com/fundedfolk/supportbot/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:    "supportbot",
		Usage:   "Funded Folk RAG support chatbot",
		Version: version.String(),
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Load or build the index and start the HTTP API server",
				Flags:  commonFlags(),
				Action: serveAction,
			},
			{
				Name:   "chat",
				Usage:  "Load or build the index and chat interactively in the terminal",
				Flags:  commonFlags(),
				Action: chatAction,
			},
			{
				Name:   "index",
				Usage:  "Force a rebuild of the persisted index artifacts",
				Flags:  commonFlags(),
				Action: indexAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "env",
			Usage: "config environment name (local, dev, docker, prod); default from ENV",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "dotenv file loaded before config resolution",
			Value: ".env",
		},
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	a, err := bootstrap(ctx, cmd.String("env"), cmd.String("env-file"))
	if err != nil {
		return err
	}
	defer a.close()

	// A failed build leaves the index empty rather than killing the
	// server: /health reports unhealthy and /chat answers 503 until a
	// restart, matching how the API behaves mid-build.
	if err := a.index.LoadOrBuild(ctx); err != nil {
		a.logger.Error("Index initialization failed, serving degraded", zap.Error(err))
	}

	server := chiTransport.NewServer(a.chat, a.health, a.logger)

	addr := fmt.Sprintf(":%d", a.cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Handler(),
		ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}
	a.logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Error during shutdown", zap.Error(err))
	}

	a.logger.Info("Server stopped gracefully")
	return nil
}

func chatAction(ctx context.Context, cmd *cli.Command) error {
	a, err := bootstrap(ctx, cmd.String("env"), cmd.String("env-file"))
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.index.LoadOrBuild(ctx); err != nil {
		return fmt.Errorf("initialize index: %w", err)
	}

	// Ctrl-C while blocked on stdin cannot unblock the read, so leave
	// directly once the signal context fires.
	go func() {
		<-ctx.Done()
		fmt.Println("\nBye!")
		a.close()
		os.Exit(0)
	}()

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintfFunc()

	fmt.Println(boldGreen("Funded Folk Support Chat"))
	fmt.Printf("Knowledge base: %s documents indexed\n", boldCyan(a.index.Len()))
	fmt.Println("Type your question and press Enter. Type 'exit' or 'quit' to leave.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(query) {
		case "":
			continue
		case "exit", "quit":
			fmt.Println("Bye!")
			return nil
		}

		answer, err := a.chat.Ask(ctx, query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		fmt.Print(boldCyan("Assistant: "))
		fmt.Println(answer.Text)
		fmt.Println(faint("(%s, %dms)", answer.Model, answer.Elapsed.Milliseconds()))
		fmt.Println()
	}
	return scanner.Err()
}

func indexAction(ctx context.Context, cmd *cli.Command) error {
	a, err := bootstrap(ctx, cmd.String("env"), cmd.String("env-file"))
	if err != nil {
		return err
	}
	defer a.close()

	start := time.Now()
	if err := a.index.Rebuild(ctx); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	fmt.Printf("Indexed %d documents in %s (dir %s)\n",
		a.index.Len(), time.Since(start).Round(time.Millisecond), a.cfg.Index.Dir)
	return nil
}
