package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/collegeconnect/socialgraph/internal/sociald"
	"github.com/collegeconnect/socialgraph/pkg/config"
	"github.com/collegeconnect/socialgraph/pkg/logger"
)

type options struct {
	configPath string
	seedPath   string
	logLevel   string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("socialgraphd", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "path to YAML config (defaults are used when empty)")
	fs.StringVar(&opts.seedPath, "seed", "", "path to YAML seed file (overrides seed_file)")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

// loadConfig resolves configuration from file, then environment, then flags.
func loadConfig(opts options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(opts.logLevel))
	}
	if opts.seedPath != "" {
		cfg.SeedFile = opts.seedPath
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid flag: %w", err)
	}
	return cfg, nil
}

func main() {
	config.LoadDotEnv()

	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.SetDefault(logger.NewWithFormat(cfg.LogFormat, cfg.LogLevel, os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("socialgraphd exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	svc, err := sociald.NewService(cfg)
	if err != nil {
		return err
	}
	if cfg.SeedFile != "" {
		seed, err := config.LoadSeed(cfg.SeedFile)
		if err != nil {
			return err
		}
		if err := svc.LoadSeed(seed); err != nil {
			return err
		}
	}

	grpcAddr := strings.TrimSpace(cfg.GRPCAddr)
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if grpcAddr == "" && httpAddr == "" {
		return errors.New("no listen address configured")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	// An empty address disables that surface.
	if grpcAddr != "" {
		if err := serveGRPC(gctx, g, svc, grpcAddr); err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
	} else {
		logger.Info("gRPC server disabled")
	}
	if httpAddr != "" {
		if err := serveHTTP(gctx, g, svc, httpAddr); err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
	} else {
		logger.Info("HTTP server disabled")
	}

	return g.Wait()
}

func serveGRPC(ctx context.Context, g *errgroup.Group, svc *sociald.Service, addr string) error {
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(sociald.UnaryLoggingInterceptor(logger.Component("grpc"))))
	health := sociald.Register(grpcServer, svc)

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen for gRPC on %s: %w", addr, err)
	}

	g.Go(func() error {
		logger.Info("gRPC server listening", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("gRPC server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("gRPC shutdown requested")
		health.Shutdown()
		grpcServer.GracefulStop()
		return nil
	})
	return nil
}

func serveHTTP(ctx context.Context, g *errgroup.Group, svc *sociald.Service, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen for HTTP on %s: %w", addr, err)
	}
	httpSrv := &http.Server{
		Handler:           sociald.NewHTTPServer(svc).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", lis.Addr().String())
		if err := httpSrv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("HTTP shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP shutdown: %w", err)
		}
		return nil
	})
	return nil
}
