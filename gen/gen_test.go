package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelsSrc = `package models

import "time"

type UserModel struct {
	UserID    int64     ` + "`db:\"user_id,pk\"`" + `
	Email     string
	Password  string    ` + "`db:\"-\"`" + `
	CreatedAt time.Time ` + "`db:\"created_at\"`" + `
	note      string
}

func (*UserModel) TableName() string {
	return "users"
}

type Cart struct {
	ID, CustomerID int64
	Items          []string
}

type internalOnly struct {
	A int
}
`

func TestParse(t *testing.T) {
	models, err := Parse("models.go", []byte(modelsSrc))
	require.NoError(t, err)
	require.Len(t, models, 2)

	user := models[0]
	assert.Equal(t, "UserModel", user.Name)
	assert.Equal(t, "users", user.Table)
	assert.Equal(t, "User", user.Alias)
	assert.Equal(t, "user_id", user.Key)
	assert.Equal(t, []Field{
		{Name: "UserID", Column: "user_id", Type: "int64", Key: true},
		{Name: "Email", Column: "Email", Type: "string"},
		{Name: "CreatedAt", Column: "created_at", Type: "time.Time"},
	}, user.Fields)
	assert.Equal(t, []string{"user_id", "Email", "created_at"}, user.Columns())

	cart := models[1]
	assert.Equal(t, "Cart", cart.Table)
	assert.Equal(t, "ID", cart.Key)
	assert.Equal(t, []string{"ID", "CustomerID", "Items"}, cart.Columns())
	assert.Equal(t, "[]string", cart.Fields[2].Type)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("bad.go", []byte("package models\ntype X struct {"))
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	models, err := Parse("models.go", []byte(modelsSrc))
	require.NoError(t, err)

	src, err := Render("models", models[0])
	require.NoError(t, err)

	out := string(src)
	assert.Contains(t, out, "// Code generated by sqlbuilder gen. DO NOT EDIT.")
	assert.Contains(t, out, "package models")
	assert.Contains(t, out, `"github.com/maxshaw/sqlbuilder/qb"`)
	assert.Contains(t, out, `UserModelTable = "users"`)
	assert.Contains(t, out, `UserModelAlias = "User"`)
	assert.Contains(t, out, `UserModelKey   = "user_id"`)
	assert.Contains(t, out, `UserID:    qb.Col("user_id"),`)
	assert.Contains(t, out, `var UserModelAllColumns = []string{"user_id", "Email", "created_at"}`)
	assert.NotContains(t, out, "Password")
}

func TestGen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models.go"), []byte(modelsSrc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models_test.go"), []byte("package models\ntype Ignored struct{ A int }\n"), 0o644))

	written, err := Gen(Options{Models: dir, Output: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "usermodel_columns.go"),
		filepath.Join(dir, "cart_columns.go"),
	}, written)

	src, err := os.ReadFile(written[1])
	require.NoError(t, err)
	assert.Contains(t, string(src), "package models")

	// A second run ignores the files it wrote.
	again, err := Gen(Options{Models: dir, Output: dir})
	require.NoError(t, err)
	assert.Equal(t, written, again)

	out := filepath.Join(t.TempDir(), "columns")
	written, err = Gen(Options{Models: dir, Output: out})
	require.NoError(t, err)
	require.Len(t, written, 2)
	src, err = os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Contains(t, string(src), "package columns")
}

func TestGen_Empty(t *testing.T) {
	_, err := Gen(Options{Models: t.TempDir(), Output: t.TempDir()})
	assert.Error(t, err)
}
