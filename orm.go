package sqlbuilder

import (
	"context"
	"database/sql"
	"log"
)

// Executor runs rendered statements. Params are keyed by placeholder name.
// *conn.DB implements it.
type Executor interface {
	Exec(ctx context.Context, query string, params map[string]any) (sql.Result, error)
	Query(ctx context.Context, query string, params map[string]any) (*sql.Rows, error)
}

// Modeler lets a model choose its table name. Models without it use the
// Go type name.
type Modeler interface {
	TableName() string
}

type LogFunc func(format string, args ...any)

var logf LogFunc = log.Printf

// SetLogger replaces the statement logger. A nil logger disables logging.
func SetLogger(fn LogFunc) {
	logf = fn
}

func logSQL(query string, params map[string]any) {
	if logf == nil {
		return
	}
	logf("[SQL] %s\n", query)
	logf("[SQL] %+v\n", params)
}

func exec(ctx context.Context, ex Executor, query string, params map[string]any) (sql.Result, error) {
	logSQL(query, params)
	return ex.Exec(ctx, query, params)
}

func queryMaps(ctx context.Context, ex Executor, query string, params map[string]any) ([]map[string]any, error) {
	logSQL(query, params)

	rows, err := ex.Query(ctx, query, params)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = vals[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
