// Package commands implements the sqlremap subcommands.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/sqlremap/internal/cli/config"
	"github.com/leapstack-labs/sqlremap/pkg/dialect"
	"github.com/spf13/cobra"
)

// commandConfig returns the loaded configuration, falling back to
// defaults when no config has been loaded (e.g. in tests).
func commandConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Dialect:      config.DefaultDialect,
		OutputFormat: config.DefaultOutput,
	}
}

// commandDialect resolves the configured dialect.
func commandDialect(cfg *config.Config) (*dialect.Dialect, error) {
	name := cfg.Dialect
	if name == "" {
		name = config.DefaultDialect
	}
	d, err := dialect.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown dialect %q (available: %s)", name, strings.Join(dialect.List(), ", "))
	}
	return d, nil
}

// readSQL reads the query to process. Priority: --sql flag > file
// argument > stdin. A file argument of "-" also reads stdin.
func readSQL(cmd *cobra.Command, args []string) (string, error) {
	if sql, _ := cmd.Flags().GetString("sql"); sql != "" {
		return sql, nil
	}

	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no input: pass a file argument, --sql, or pipe a query on stdin")
	}
	return string(data), nil
}
