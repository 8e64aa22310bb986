package postgres

import (
	"fmt"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
)

type rawRowModel struct {
	ID      int64  `db:"id"`
	Payload []byte `db:"payload"`
}

func listRawRowsQueryFor(table string) string {
	return fmt.Sprintf(listRawRowsQuery, table)
}

// decodeRawRows skips rows whose payload is SQL NULL or JSON null.
func decodeRawRows(table string, rows []rawRowModel) ([]rawdata.Payload, error) {
	out := make([]rawdata.Payload, 0, len(rows))
	for _, row := range rows {
		if len(row.Payload) == 0 {
			continue
		}

		var payload rawdata.Payload
		if err := sonic.Unmarshal(row.Payload, &payload); err != nil {
			return nil, crerr.Wrapf(err, "decode %s payload id=%d", table, row.ID)
		}
		if payload == nil {
			continue
		}
		out = append(out, payload)
	}

	return out, nil
}
