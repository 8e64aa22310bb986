package rawdata

import "context"

// Repository exposes previously stored provider rows. An empty league matches
// rows of every league for the sport.
type Repository interface {
	ListTeamRows(ctx context.Context, sport, league string) ([]Payload, error)
	ListGameRows(ctx context.Context, sport, league string) ([]Payload, error)
}
