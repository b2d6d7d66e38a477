// Package taskflow parses TaskFlow service configuration and launches the
// service.
package taskflow

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	entrypoint "github.com/louisbranch/taskflow/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/taskflow/internal/platform/grpc"
	"github.com/louisbranch/taskflow/internal/platform/timeouts"
	"github.com/louisbranch/taskflow/internal/services/taskflow/auth"
	server "github.com/louisbranch/taskflow/internal/services/taskflow/app"
)

// EnvPrefix is shared by every TaskFlow environment variable.
const EnvPrefix = "TASKFLOW_"

// Config holds TaskFlow command configuration.
type Config struct {
	HTTPAddr   string        `env:"HTTP_ADDR" envDefault:":3000"`
	GRPCAddr   string        `env:"GRPC_ADDR"`
	DBPath     string        `env:"DB_PATH" envDefault:"data/taskflow.db"`
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"8"`
	StaticDir  string        `env:"STATIC_DIR"`
	CORSOrigin string        `env:"CORS_ORIGIN" envDefault:"*"`

	// HealthCheck probes GRPCAddr and exits instead of serving.
	HealthCheck bool `env:"-"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.HTTPAddr, "http-addr", "", "The TaskFlow HTTP listen address")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", "", "The gRPC health listen address (empty disables it)")
	fs.StringVar(&cfg.DBPath, "db-path", "", "The SQLite database path")
	fs.StringVar(&cfg.StaticDir, "static-dir", "", "Directory of static front-end files to serve")
	fs.BoolVar(&cfg.HealthCheck, "healthcheck", false, "Probe the gRPC health endpoint and exit")

	// Flags point into cfg: env values land first and explicit flags win.
	if err := entrypoint.ParsePrefixedConfigFromArgs(&cfg, EnvPrefix, fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration that cannot start a server.
func (c Config) Validate() error {
	if c.HealthCheck {
		if strings.TrimSpace(c.GRPCAddr) == "" {
			return fmt.Errorf("%sGRPC_ADDR is required for -healthcheck", EnvPrefix)
		}
		return nil
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("%sJWT_SECRET is required", EnvPrefix)
	}
	if len(c.JWTSecret) < auth.MinSecretLength {
		return fmt.Errorf("%sJWT_SECRET must be at least %d bytes", EnvPrefix, auth.MinSecretLength)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%sTOKEN_TTL must be positive", EnvPrefix)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%sBCRYPT_COST must be between %d and %d", EnvPrefix, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// Run starts the TaskFlow service, or probes a running one when
// HealthCheck is set.
func Run(ctx context.Context, cfg Config) error {
	if cfg.HealthCheck {
		return platformgrpc.Probe(ctx, probeAddr(cfg.GRPCAddr), timeouts.HealthCheck)
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTaskflow, func(ctx context.Context) error {
		return server.Run(ctx, server.Config{
			HTTPAddr:   cfg.HTTPAddr,
			GRPCAddr:   cfg.GRPCAddr,
			DBPath:     cfg.DBPath,
			JWTSecret:  cfg.JWTSecret,
			TokenTTL:   cfg.TokenTTL,
			BcryptCost: cfg.BcryptCost,
			StaticDir:  cfg.StaticDir,
			CORSOrigin: cfg.CORSOrigin,
		})
	})
}

// probeAddr turns a listen address like ":8090" into a dialable one.
func probeAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
