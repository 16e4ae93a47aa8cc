package sqlbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxshaw/sqlbuilder/qb"
)

func TestUpdate_AutoMap(t *testing.T) {
	user := &User{Name: "Jane", Email: "jane@example.com"}

	sql, params, err := Update(user).AutoMap().Where(qb.Eq("Id", 1)).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE User SET Name = @p0, Email = @p1 WHERE Id = @p2", sql)
	assert.Equal(t, map[string]any{"@p0": "Jane", "@p1": "jane@example.com", "@p2": 1}, params)
}

func TestUpdate_Join(t *testing.T) {
	sql, params, err := Update[User](nil).
		Join(Of[Customers](), "Id", "UserId").
		Set("Name", "John").
		WhereOn(Of[Customers](), qb.Eq("Phone", "555")).
		Where(qb.Eq("Id", 7)).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE User AS User INNER JOIN Customers AS Customers ON User.Id = Customers.UserId"+
		" SET User.Name = @p0 WHERE Customers.Phone = @p1 AND User.Id = @p2", sql)
	assert.Equal(t, map[string]any{"@p0": "John", "@p1": "555", "@p2": 7}, params)
}

func TestUpdate_SetTwiceReusesPlaceholder(t *testing.T) {
	sql, params, err := Update[User](nil).
		Set("Name", "a").
		Set("Email", "e").
		Set("Name", "b").
		Where(qb.Eq("Id", 1)).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE User SET Name = @p0, Email = @p1 WHERE Id = @p2", sql)
	assert.Equal(t, "b", params["@p0"])
}

func TestUpdate_SetExpr(t *testing.T) {
	form := struct{ Title string }{Title: "new"}

	sql, params, err := UpdateTable("posts").
		SetExpr(qb.Col("Title"), qb.Field(form, "Title")).
		SetExpr(qb.Col("Views"), func() any { return 0 }).
		Where(qb.Eq("Id", 3)).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE posts SET Title = @p0, Views = @p1 WHERE Id = @p2", sql)
	assert.Equal(t, map[string]any{"@p0": "new", "@p1": 0, "@p2": 3}, params)

	_, _, err = UpdateTable("posts").SetExpr(qb.Const{Value: "Title"}, 1).Where(qb.Eq("Id", 3)).ToSQL()
	assert.ErrorIs(t, err, ErrInvalidColumnExpression)
}

func TestUpdate_MissingSet(t *testing.T) {
	_, _, err := Update(&User{}).AutoMap().Where(qb.Eq("Id", 1)).ToSQL()
	assert.ErrorIs(t, err, ErrMissingSetClause)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "UPDATE", verr.Statement)
}

func TestUpdate_KeyGuard(t *testing.T) {
	tests := map[string]*UpdateBuilder[User]{
		"no where":       Update[User](nil).Set("Name", "x"),
		"other column":   Update[User](nil).Set("Name", "x").Where(qb.Eq("Email", "a")),
		"prefixed match": Update[User](nil).Set("Name", "x").Where(qb.Eq("UserId", 2)),
	}

	for name, b := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := b.ToSQL()
			assert.ErrorIs(t, err, ErrMissingKeyCondition)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, DefaultKeyColumn, verr.Field)
		})
	}
}

func TestUpdate_CustomKey(t *testing.T) {
	b := UpdateTable("accounts").Set("Balance", 10).Where(qb.Eq("AccountNo", "A-1"))

	_, _, err := b.ToSQL()
	assert.ErrorIs(t, err, ErrMissingKeyCondition)

	sql, _, err := b.ToSQLKey("AccountNo")
	require.NoError(t, err)
	assert.Equal(t, "UPDATE accounts SET Balance = @p0 WHERE AccountNo = @p1", sql)
}

func TestUpdate_GroupSatisfiesGuard(t *testing.T) {
	sql, _, err := Update[User](nil).
		Set("Name", "x").
		WhereGroup(func(c *Cond) {
			c.Where(qb.Eq("Id", 1)).OrWhere(qb.Eq("Id", 2))
		}).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE User SET Name = @p0 WHERE (Id = @p1 OR Id = @p2)", sql)
}
