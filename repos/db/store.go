package db

import (
	"github.com/smzarrabimmp/cms/internal/sqlx"
)

type Store struct {
	conn *sqlx.DB
}

func NewStore(conn *sqlx.DB) *Store {
	return &Store{
		conn: conn,
	}
}
