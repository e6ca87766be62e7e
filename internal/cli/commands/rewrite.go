package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlremap/internal/cli/config"
	"github.com/leapstack-labs/sqlremap/internal/rules"
	"github.com/leapstack-labs/sqlremap/pkg/rewrite"
	"github.com/spf13/cobra"
)

// NewRewriteCommand creates the rewrite command.
func NewRewriteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite [file]",
		Short: "Rewrite table references in a query",
		Long: `Parse a SELECT statement, apply the rewrite rules to every qualified
table reference, and print the rewritten query.

The query is read from the file argument, from --sql, or from stdin.`,
		Example: `  # Rewrite a query from a file
  sqlremap rewrite query.sql --rules rules.yaml

  # Rewrite an inline query
  sqlremap rewrite --sql "SELECT * FROM staging.events" --rules rules.yaml

  # Rewrite a query from stdin
  cat query.sql | sqlremap rewrite --rules rules.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, args)
		},
	}

	cmd.Flags().String("sql", "", "Inline SQL to rewrite")

	return cmd
}

func runRewrite(cmd *cobra.Command, args []string) error {
	cfg := commandConfig()

	d, err := commandDialect(cfg)
	if err != nil {
		return err
	}

	if cfg.Rules == "" {
		return fmt.Errorf("no rules file: pass --rules or set the rules key in sqlremap.yaml")
	}
	ruleSet, err := rules.Load(cfg.Rules)
	if err != nil {
		return err
	}

	sql, err := readSQL(cmd, args)
	if err != nil {
		return err
	}

	opts := []rewrite.Option{rewrite.WithLogger(config.GetLogger(cmd.Context()))}
	if cfg.Unqualified {
		opts = append(opts, rewrite.WithUnqualified())
	}

	out, err := rewrite.New(d, rules.Handler(ruleSet, d), opts...).Rewrite(sql)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
