package reconcile

import (
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/sports-reconciler/internal/domain/game"
)

var ErrInferredGameDate = crerr.New("game date missing or unparseable")

// ValidateGameDate rejects games whose date was defaulted during
// normalization.
func ValidateGameDate(g game.Game) error {
	if !g.DateInferred {
		return nil
	}
	return crerr.Wrapf(ErrInferredGameDate, "game %s", g.ID)
}
