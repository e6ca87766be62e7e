package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/sqlremap/internal/cli/config"
	"github.com/leapstack-labs/sqlremap/pkg/ast"
	"github.com/leapstack-labs/sqlremap/pkg/dialect"
	"github.com/leapstack-labs/sqlremap/pkg/parser"
	"github.com/leapstack-labs/sqlremap/pkg/rewrite"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables [file]",
		Short: "List table references in a query",
		Long: `Parse a SELECT statement and list every table it references.
References to CTEs defined in the query are not listed unless --all
is given.

Use --output to choose the format: table, json, yaml, csv, markdown`,
		Example: `  # List tables in a query file
  sqlremap tables query.sql

  # List tables as JSON
  sqlremap tables query.sql --output json

  # List tables in an inline query
  sqlremap tables --sql "SELECT * FROM prod.sales.orders"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(cmd, args)
		},
	}

	cmd.Flags().String("sql", "", "Inline SQL to inspect")
	cmd.Flags().Bool("all", false, "Include references to CTEs defined in the query")

	return cmd
}

func runTables(cmd *cobra.Command, args []string) error {
	cfg := commandConfig()

	d, err := commandDialect(cfg)
	if err != nil {
		return err
	}

	sql, err := readSQL(cmd, args)
	if err != nil {
		return err
	}

	var refs []rewrite.TableID
	if all, _ := cmd.Flags().GetBool("all"); all {
		refs, err = allTableRefs(sql, d)
	} else {
		refs, err = resolvedTableRefs(cmd, sql, d)
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch cfg.OutputFormat {
	case "json":
		return tablesJSON(w, refs)
	case "yaml":
		return tablesYAML(w, refs)
	case "csv":
		return tablesCSV(w, refs)
	case "md", "markdown":
		return tablesMarkdown(w, refs)
	default:
		return tablesText(w, refs)
	}
}

// resolvedTableRefs lists the table references the rewrite engine would
// visit. Bare names are included so unqualified real tables are listed,
// but CTE references are still filtered out by the walk.
func resolvedTableRefs(cmd *cobra.Command, sql string, d *dialect.Dialect) ([]rewrite.TableID, error) {
	var refs []rewrite.TableID
	r := rewrite.New(d,
		func(id rewrite.TableID) (rewrite.Decision, error) {
			refs = append(refs, id)
			return rewrite.KeepAll(), nil
		},
		rewrite.WithLogger(config.GetLogger(cmd.Context())),
		rewrite.WithUnqualified(),
	)
	if _, err := r.Rewrite(sql); err != nil {
		return nil, err
	}
	return refs, nil
}

// allTableRefs lists every table reference in the statement, CTE
// references included.
func allTableRefs(sql string, d *dialect.Dialect) ([]rewrite.TableID, error) {
	stmt, err := parser.Parse(sql, d)
	if err != nil {
		return nil, err
	}

	var refs []rewrite.TableID
	ast.Inspect(stmt, func(n any) bool {
		if tn, ok := n.(*ast.TableName); ok && tn.Name != nil {
			id := rewrite.TableID{Name: tn.Name.Value}
			if tn.Catalog != nil {
				id.Catalog = tn.Catalog.Value
			}
			if tn.Schema != nil {
				id.Database = tn.Schema.Value
			}
			refs = append(refs, id)
		}
		return true
	})
	return refs, nil
}

// tableRef is the serialized form of a table reference.
type tableRef struct {
	Catalog  string `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
	Name     string `json:"name"              yaml:"name"`
}

func toTableRefs(refs []rewrite.TableID) []tableRef {
	out := make([]tableRef, 0, len(refs))
	for _, id := range refs {
		out = append(out, tableRef{Catalog: id.Catalog, Database: id.Database, Name: id.Name})
	}
	return out
}

func tablesText(w io.Writer, refs []rewrite.TableID) error {
	if len(refs) == 0 {
		_, _ = fmt.Fprintln(w, "(0 tables)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Catalog", "Database", "Name"})

	for _, id := range refs {
		t.AppendRow(table.Row{id.Catalog, id.Database, id.Name})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d tables)\n", len(refs))
	return nil
}

func tablesJSON(w io.Writer, refs []rewrite.TableID) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toTableRefs(refs))
}

func tablesYAML(w io.Writer, refs []rewrite.TableID) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(toTableRefs(refs))
}

func tablesCSV(w io.Writer, refs []rewrite.TableID) error {
	_, _ = fmt.Fprintln(w, "catalog,database,name")
	for _, id := range refs {
		fields := []string{escapeCSV(id.Catalog), escapeCSV(id.Database), escapeCSV(id.Name)}
		_, _ = fmt.Fprintln(w, strings.Join(fields, ","))
	}
	return nil
}

func tablesMarkdown(w io.Writer, refs []rewrite.TableID) error {
	if len(refs) == 0 {
		_, _ = fmt.Fprintln(w, "(0 tables)")
		return nil
	}

	_, _ = fmt.Fprintln(w, "| Catalog | Database | Name |")
	_, _ = fmt.Fprintln(w, "| --- | --- | --- |")
	for _, id := range refs {
		_, _ = fmt.Fprintf(w, "| %s | %s | %s |\n", id.Catalog, id.Database, id.Name)
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
