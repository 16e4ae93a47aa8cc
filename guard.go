package sqlbuilder

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultKeyColumn is the column UPDATE and DELETE must filter on.
const DefaultKeyColumn = "Id"

// guardKey fails unless the rendered WHERE text mentions key as a whole word,
// bare or alias-qualified. It is a textual check: a key name inside a raw
// operator or column string satisfies it too.
func guardKey(statement, where, key string) error {
	if strings.TrimSpace(key) == "" {
		return &ValidationError{
			Statement:  statement,
			Msg:        "key column is empty",
			Underlying: ErrMissingKeyCondition,
		}
	}

	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(key) + `\b`)
	if err != nil {
		return fmt.Errorf("sqlbuilder: key column %q: %w", key, err)
	}
	if where != "" && re.MatchString(where) {
		return nil
	}
	return &ValidationError{
		Statement:  statement,
		Field:      key,
		Msg:        "WHERE clause must include a condition on the key column",
		Underlying: ErrMissingKeyCondition,
	}
}
