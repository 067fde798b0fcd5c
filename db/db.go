package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rqlite/gorqlite"
)

func New(conn *gorqlite.Connection) *Queries {
	return &Queries{
		conn: conn,
	}
}

type Queries struct {
	conn *gorqlite.Connection
}

type StatusCheck struct {
	ID         string
	ClientName string
	Timestamp  time.Time
}

// timestampFormat is fixed width, so stored UTC timestamps sort as text in
// time order.
const timestampFormat = "2006-01-02T15:04:05.000000000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

func parseTimestamp(s string) (t time.Time, err error) {
	t, err = time.Parse(timestampFormat, s)
	if err != nil {
		return t, fmt.Errorf("db: invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

type statusCheckRow struct {
	ID         string
	ClientName string
	Timestamp  string
}

func scanStatusCheck(result *gorqlite.QueryResult) (sc StatusCheck, err error) {
	var row statusCheckRow
	if err = result.Scan(&row.ID, &row.ClientName, &row.Timestamp); err != nil {
		return sc, fmt.Errorf("db: status check scan failed: %w", err)
	}
	ts, err := parseTimestamp(row.Timestamp)
	if err != nil {
		return sc, err
	}
	return StatusCheck{ID: row.ID, ClientName: row.ClientName, Timestamp: ts}, nil
}

func (q *Queries) StatusCheckPut(ctx context.Context, sc StatusCheck) (err error) {
	stmt := gorqlite.ParameterizedStatement{
		Query:     `insert into status_check (id, client_name, timestamp) values (?, ?, ?)`,
		Arguments: []any{sc.ID, sc.ClientName, formatTimestamp(sc.Timestamp)},
	}
	result, err := q.conn.WriteOneParameterizedContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("db: status check put failed: %w", err)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("db: status check put failed: expected 1 row affected, got %d", result.RowsAffected)
	}
	return nil
}

// StatusCheckList returns status checks oldest first.
func (q *Queries) StatusCheckList(ctx context.Context, limit int) (checks []StatusCheck, err error) {
	stmt := gorqlite.ParameterizedStatement{
		Query:     `select id, client_name, timestamp from status_check order by timestamp asc, id asc limit ?`,
		Arguments: []any{limit},
	}
	result, err := q.conn.QueryOneParameterizedContext(ctx, stmt)
	if err != nil {
		return checks, fmt.Errorf("db: status check list failed: %w", err)
	}
	for result.Next() {
		sc, err := scanStatusCheck(&result)
		if err != nil {
			return checks, err
		}
		checks = append(checks, sc)
	}
	return checks, nil
}

// Ping runs a trivial query against the cluster.
func (q *Queries) Ping(ctx context.Context) (err error) {
	result, err := q.conn.QueryOneContext(ctx, "select 1")
	if err != nil {
		return fmt.Errorf("db: ping failed: %w", err)
	}
	if result.Err != nil {
		return fmt.Errorf("db: ping failed: %w", result.Err)
	}
	return nil
}

func (q *Queries) Close() {
	q.conn.Close()
}
