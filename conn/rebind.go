package conn

import (
	"fmt"
	"regexp"
	"strconv"
)

var placeholderRe = regexp.MustCompile(`@p[0-9]+`)

// Rebind rewrites @pN placeholders into the provider's positional style and
// returns the arguments in matching order. Postgres gets $1, $2, ... with a
// repeated placeholder reusing its number; the others get one ? per
// occurrence.
func (db *DB) Rebind(query string, params map[string]any) (string, []any, error) {
	return rebind(db.provider, query, params)
}

func rebind(p Provider, query string, params map[string]any) (string, []any, error) {
	var (
		args    []any
		numbers = make(map[string]int)
		missing string
	)

	out := placeholderRe.ReplaceAllStringFunc(query, func(name string) string {
		v, ok := params[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return name
		}

		if p == PgSQL || p == Postgres {
			if n, ok := numbers[name]; ok {
				return "$" + strconv.Itoa(n)
			}
			args = append(args, v)
			numbers[name] = len(args)
			return "$" + strconv.Itoa(len(args))
		}

		args = append(args, v)
		return "?"
	})

	if missing != "" {
		return "", nil, fmt.Errorf("%w: %s", ErrMissingParam, missing)
	}
	return out, args, nil
}
