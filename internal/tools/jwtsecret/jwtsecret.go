// Package jwtsecret generates a random session signing secret.
package jwtsecret

import (
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/louisbranch/taskflow/internal/services/taskflow/auth"
)

// EnvName is the variable the generated secret is printed for.
const EnvName = "TASKFLOW_JWT_SECRET"

// Config holds configuration for secret generation.
type Config struct {
	Bytes int
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Bytes: 32}
	fs.IntVar(&cfg.Bytes, "bytes", cfg.Bytes, "number of random bytes (default: 32)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates the secret and writes it to out as an env assignment.
// The hex encoding doubles the length, so Bytes may be as low as half the
// minimum secret length.
func Run(cfg Config, out io.Writer, reader io.Reader) error {
	if cfg.Bytes*2 < auth.MinSecretLength {
		return fmt.Errorf("bytes must be at least %d", (auth.MinSecretLength+1)/2)
	}
	if out == nil {
		return errors.New("output is required")
	}
	if reader == nil {
		reader = rand.Reader
	}

	buf := make([]byte, cfg.Bytes)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return fmt.Errorf("generate random bytes: %w", err)
	}
	_, err := fmt.Fprintf(out, "%s=%x\n", EnvName, buf)
	return err
}
