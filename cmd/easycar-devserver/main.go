package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yndnr/easycar-go/internal/core/domain"
	"github.com/yndnr/easycar-go/internal/core/service"
	"github.com/yndnr/easycar-go/internal/infra/buildinfo"
	"github.com/yndnr/easycar-go/internal/infra/shutdown"
	"github.com/yndnr/easycar-go/internal/server/config"
	"github.com/yndnr/easycar-go/internal/server/httpserver"
	"github.com/yndnr/easycar-go/internal/telemetry/logger"
	"github.com/yndnr/easycar-go/internal/telemetry/metric"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("easycar-devserver", flag.ContinueOnError)
	var (
		configFile   = fs.String("config", "", "Path to configuration file")
		addr         = fs.String("addr", "", "Listen address (overrides server.addr)")
		showVersion  = fs.Bool("version", false, "Show version information")
		hashPassword = fs.Bool("hash-password", false, "Read a password from stdin and print its argon2id hash")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "easycar-devserver %s\n", buildinfo.String())
		return nil
	}

	if *hashPassword {
		return printPasswordHash(stdin, stdout)
	}

	cfg, err := config.Load(*configFile, map[string]any{"server.addr": *addr})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting easycar-devserver",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	services, err := initServices(cfg, log)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	metrics := metric.NewRegistry().WithRuntimeMetrics()

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		AuthService:       services.Auth,
		VehicleService:    services.Vehicles,
		Metrics:           metrics,
		Logger:            log,
		RateLimit:         cfg.Server.RateLimit,
		RateBurst:         cfg.Server.RateBurst,
		TrustProxyHeaders: cfg.Server.TrustProxyHeaders,
	})
	httpServer := httpserver.New(cfg.Server.Addr, router, httpserver.WithErrorLogger(log))

	shutdownHandler := shutdown.NewHandler(cfg.Server.ShutdownTimeout)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		defer cancel()
		log.Info("HTTP server listening", "addr", cfg.Server.Addr, "tls", cfg.Server.TLSCertFile != "")

		var err error
		if cfg.Server.TLSCertFile != "" && cfg.Server.TLSKeyFile != "" {
			err = httpServer.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			serveErr <- err
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}
	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	default:
	}

	log.Info("server stopped gracefully")
	return nil
}

// initLogger initializes the structured logger.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	logCfg := cfg.Log
	if logCfg.Output == nil {
		logCfg.Output = os.Stdout
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)
	return log, nil
}

// Services holds all initialized services.
type Services struct {
	Auth     *service.AuthService
	Vehicles *service.VehicleService
}

// initServices initializes the backend services.
func initServices(cfg *config.ServerConfig, log logger.Logger) (*Services, error) {
	signingKey := cfg.Auth.SigningKey
	if signingKey == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		signingKey = hex.EncodeToString(key)
		log.Warn("auth.signing_key not set, using a random key; tokens will not survive a restart")
	}

	tokenSvc, err := service.NewTokenService(service.TokenServiceConfig{
		SigningKey: signingKey,
		TTL:        cfg.Auth.TokenTTL,
		Issuer:     cfg.Auth.Issuer,
	})
	if err != nil {
		return nil, err
	}

	users := make([]service.User, 0, len(cfg.Users))
	for _, u := range cfg.Users {
		users = append(users, service.User{Email: u.Email, PasswordHash: u.PasswordHash})
	}
	if len(users) == 0 {
		hash, err := domain.HashPassword(config.DemoPassword)
		if err != nil {
			return nil, err
		}
		users = append(users, service.User{Email: config.DemoEmail, PasswordHash: hash})
		log.Warn("no users configured, seeded the demo account", "email", config.DemoEmail)
	}

	authSvc, err := service.NewAuthService(users, tokenSvc)
	if err != nil {
		return nil, err
	}

	log.Info("services initialized",
		"users", authSvc.UserCount(),
		"token_ttl", tokenSvc.TTL().String())

	return &Services{
		Auth:     authSvc,
		Vehicles: service.NewVehicleService(),
	}, nil
}

// printPasswordHash reads one password and prints its argon2id hash. A
// terminal gets a prompt without echo.
func printPasswordHash(stdin io.Reader, stdout io.Writer) error {
	var password string
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(os.Stderr, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}
		password = string(b)
	} else {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if len(password) < domain.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", domain.MinPasswordLength)
	}

	hash, err := domain.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, hash)
	return nil
}
