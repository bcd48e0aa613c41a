package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsFold - регистронезависимый поиск подстроки хотя бы в одной из колонок.
// NULL в колонке считается несовпадением.
func ContainsFold(term string, columns ...string) Scope {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		conds := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			conds[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
			args[i] = pattern
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// EqualFold - регистронезависимое равенство колонки значению
func EqualFold(column, value string) Scope {
	value = strings.ToLower(strings.TrimSpace(value))
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+column+") = ?", value)
	}
}

// ExcludeID исключает строку с заданным идентификатором; uuid.Nil ничего не исключает
func ExcludeID(column string, id uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if id == uuid.Nil {
			return db
		}
		return db.Where(column+" <> ?", id)
	}
}
