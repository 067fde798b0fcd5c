package db

import (
	"context"
	"fmt"

	"github.com/rqlite/gorqlite"
)

// Test helpers. The API only creates and lists status checks.

func (q *Queries) StatusCheckGet(ctx context.Context, id string) (sc StatusCheck, ok bool, err error) {
	stmt := gorqlite.ParameterizedStatement{
		Query:     `select id, client_name, timestamp from status_check where id = ?`,
		Arguments: []any{id},
	}
	result, err := q.conn.QueryOneParameterizedContext(ctx, stmt)
	if err != nil {
		return sc, false, fmt.Errorf("db: status check get failed: %w", err)
	}
	if !result.Next() {
		return sc, false, nil
	}
	sc, err = scanStatusCheck(&result)
	return sc, err == nil, err
}

func (q *Queries) StatusCheckDelete(ctx context.Context, id string) (err error) {
	stmt := gorqlite.ParameterizedStatement{
		Query:     `delete from status_check where id = ?`,
		Arguments: []any{id},
	}
	if _, err = q.conn.WriteOneParameterizedContext(ctx, stmt); err != nil {
		return fmt.Errorf("db: status check delete failed: %w", err)
	}
	return nil
}
