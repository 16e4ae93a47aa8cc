// Package sqlbuilder builds parameterized SELECT, INSERT, UPDATE and DELETE
// statements from chained calls.
//
// Conditions are qb predicates. Every value goes through a numbered
// placeholder (@p0, @p1, ...) and comes back in the parameter map returned
// next to the SQL text:
//
//	sql, params, err := sqlbuilder.Select[User]().
//		Join(sqlbuilder.Of[Order](), "Id", "UserId").
//		Where(qb.Eq("Active", true)).
//		WhereGroup(func(c *sqlbuilder.Cond) {
//			c.Where(qb.Contains("Email", "@example.com")).OrWhere(qb.Gt("Age", 30))
//		}).
//		OrderBy("Name", qb.Descend).
//		Limit(10, 20).
//		ToSQL()
//
// UPDATE and DELETE refuse to render unless WHERE mentions the key column,
// "Id" by default.
//
// Builders are not safe for concurrent use. Errors from chained calls are
// kept and returned by the render call; a failed call adds nothing.
package sqlbuilder
