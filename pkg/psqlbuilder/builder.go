package psqlbuilder

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Поддерживаемые SQL-диалекты
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Builder построитель запросов squirrel с плейсхолдерами выбранного диалекта
type Builder struct {
	dialect string
	sb      squirrel.StatementBuilderType
}

// New создает построитель для диалекта (postgres - $1, sqlite - ?)
func New(dialect string) (Builder, error) {
	switch dialect {
	case DialectPostgres:
		return Builder{dialect: dialect, sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}, nil
	case DialectSQLite:
		return Builder{dialect: dialect, sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)}, nil
	default:
		return Builder{}, fmt.Errorf("psqlbuilder: unsupported dialect %q", dialect)
	}
}

// MustNew как New, но паникует на неизвестном диалекте
func MustNew(dialect string) Builder {
	b, err := New(dialect)
	if err != nil {
		panic(err)
	}
	return b
}

// Postgres построитель для PostgreSQL
func Postgres() Builder {
	return MustNew(DialectPostgres)
}

func (b Builder) Dialect() string {
	return b.dialect
}

func (b Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sb.Select(columns...)
}

func (b Builder) Insert(table string) squirrel.InsertBuilder {
	return b.sb.Insert(table)
}

func (b Builder) Update(table string) squirrel.UpdateBuilder {
	return b.sb.Update(table)
}

func (b Builder) Delete(table string) squirrel.DeleteBuilder {
	return b.sb.Delete(table)
}

// ILike регистронезависимый LIKE: ILIKE в postgres, LIKE в sqlite (там он и так без учёта регистра для ASCII)
func (b Builder) ILike(column, pattern string) squirrel.Sqlizer {
	if b.dialect == DialectPostgres {
		return squirrel.ILike{column: pattern}
	}
	return squirrel.Like{column: pattern}
}
