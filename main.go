package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lguibr/pongai/bollywood"
	"github.com/lguibr/pongai/game"
	"github.com/lguibr/pongai/render"
	"github.com/lguibr/pongai/server"
	"github.com/lguibr/pongai/utils"
)

func main() {
	configPath := flag.String("config", "", "path to a .toml, .yaml or .json config file")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	terminal := flag.Bool("terminal", false, "play locally in the terminal instead of serving")
	flag.Parse()

	cfg := utils.DefaultConfig()
	if *configPath != "" {
		loaded, err := utils.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if *terminal {
		err = runTerminal(ctx, cfg)
	} else {
		err = serve(ctx, cfg)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func runTerminal(ctx context.Context, cfg utils.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	term, err := render.NewTerminal(screen, cfg)
	if err != nil {
		return err
	}
	return term.Run(ctx, screen)
}

func serve(ctx context.Context, cfg utils.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	engine := bollywood.NewEngine()
	defer engine.Shutdown(5 * time.Second)

	matchPID := engine.Spawn(bollywood.NewProps(game.NewMatchActorProducer(engine, cfg)))
	if matchPID == nil {
		return errors.New("failed to spawn MatchActor")
	}
	fmt.Printf("MatchActor spawned: %s\n", matchPID)

	wsServer := server.New(engine, matchPID)
	httpServer := &http.Server{Addr: cfg.Addr, Handler: wsServer.Routes()}

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("Server listening on %s\n", cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		fmt.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
