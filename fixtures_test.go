package sqlbuilder

import (
	"time"

	"github.com/google/uuid"

	"github.com/maxshaw/sqlbuilder/types"
)

type Users struct {
	Id    int64
	Name  string
	Email string
}

type Customers struct {
	Id     int64
	UserId int64
	Phone  string
}

type Cart struct {
	Id         int64
	CustomerId int64
	Item       string
}

type User struct {
	Id    int64
	Name  string
	Email string
}

type Address struct {
	City, Street string
}

type Audit struct {
	CreatedAt time.Time `db:"created_at"`
}

type ProductModel struct {
	Audit

	Id       int64             `db:"id,pk"`
	Ref      uuid.UUID         `db:"ref"`
	Title    string            `db:"title"`
	Price    *float64          `db:"price"`
	Tags     []string          `db:"tags"`
	Address  *Address          `db:"address"`
	Meta     types.JSON[Audit] `db:"meta"`
	Secret   string            `db:"-"`
	internal string
}

func (ProductModel) TableName() string {
	return "products"
}
