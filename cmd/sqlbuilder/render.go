package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/maxshaw/sqlbuilder"
)

var (
	renderTable string
	renderWhere []string
	renderKey   string
	renderLimit int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a statement without running it",
}

var renderSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Render a SELECT",
	Example: `  sqlbuilder render select --table Users --where "Email LIKE %@example.com" --limit 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b := sqlbuilder.SelectTable(renderTable)
		for _, w := range renderWhere {
			col, op, val, err := parseWhere(w)
			if err != nil {
				return err
			}
			b.WhereRaw("", col, op, val)
		}
		if renderLimit > 0 {
			b.Limit(renderLimit)
		}

		query, params, err := b.ToSQL()
		if err != nil {
			return err
		}
		return printStatement(cmd.OutOrStdout(), query, params)
	},
}

var renderDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Render a DELETE",
	Example: `  sqlbuilder render delete --table Customers --where "Id = 123"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b := sqlbuilder.DeleteTable(renderTable)
		for _, w := range renderWhere {
			col, op, val, err := parseWhere(w)
			if err != nil {
				return err
			}
			b.WhereRaw("", col, op, val)
		}

		query, params, err := b.ToSQLKey(resolveString(renderKey, cfg.KeyColumn, sqlbuilder.DefaultKeyColumn))
		if err != nil {
			return err
		}
		return printStatement(cmd.OutOrStdout(), query, params)
	},
}

func init() {
	for _, c := range []*cobra.Command{renderSelectCmd, renderDeleteCmd} {
		f := c.Flags()
		f.StringVar(&renderTable, "table", "", "table name")
		f.StringArrayVar(&renderWhere, "where", nil, `condition "column op value", repeatable`)
		_ = c.MarkFlagRequired("table")
		renderCmd.AddCommand(c)
	}
	renderSelectCmd.Flags().IntVar(&renderLimit, "limit", 0, "row limit")
	renderDeleteCmd.Flags().StringVar(&renderKey, "key", "", "key column the WHERE clause must mention")
}

// parseWhere splits "column op value". Quoted values stay strings; bare
// values are read as integers, floats or booleans when they parse as one.
// Digit strings with a leading zero, such as phone numbers, stay strings.
func parseWhere(s string) (string, string, any, error) {
	parts := strings.SplitN(strings.TrimSpace(s), " ", 3)
	if len(parts) != 3 {
		return "", "", nil, fmt.Errorf("invalid condition %q, want \"column op value\"", s)
	}
	return parts[0], parts[1], parseValue(strings.TrimSpace(parts[2])), nil
}

func parseValue(s string) any {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	if len(s) > 1 && s[0] == '0' && isDigits(s) {
		return s
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

func isDigits(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}

func printStatement(w io.Writer, query string, params map[string]any) error {
	fmt.Fprintln(w, query)
	if len(params) == 0 {
		return nil
	}

	out, err := yaml.Marshal(params)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	_, err = w.Write(out)
	return err
}
