package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
	"github.com/riskibarqy/sports-reconciler/internal/platform/resilience"
)

const (
	rawTeamRowsTable = "raw_team_rows"
	rawGameRowsTable = "raw_game_rows"
)

// Table names are constants, never user input.
const listRawRowsQuery = `SELECT id, payload
FROM %s
WHERE deleted_at IS NULL
  AND lower(sport) = lower($1)
  AND ($2 = '' OR lower(league) = lower($2))
ORDER BY ingested_at ASC, id ASC`

type RawDataRepository struct {
	db      *sqlx.DB
	breaker *resilience.CircuitBreaker
}

// NewRawDataRepository reads stored rows through breaker. A nil breaker
// disables short-circuiting.
func NewRawDataRepository(db *sqlx.DB, breaker *resilience.CircuitBreaker) *RawDataRepository {
	return &RawDataRepository{db: db, breaker: breaker}
}

func (r *RawDataRepository) ListTeamRows(ctx context.Context, sport, league string) ([]rawdata.Payload, error) {
	return r.listRows(ctx, rawTeamRowsTable, sport, league)
}

func (r *RawDataRepository) ListGameRows(ctx context.Context, sport, league string) ([]rawdata.Payload, error) {
	return r.listRows(ctx, rawGameRowsTable, sport, league)
}

func (r *RawDataRepository) listRows(ctx context.Context, table, sport, league string) ([]rawdata.Payload, error) {
	var rows []rawRowModel
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &rows, listRawRowsQueryFor(table), sport, league)
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "list %s sport=%s league=%s", table, sport, league)
	}

	return decodeRawRows(table, rows)
}
