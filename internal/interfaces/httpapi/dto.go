package httpapi

import (
	"github.com/riskibarqy/sports-reconciler/internal/domain/game"
	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
	"github.com/riskibarqy/sports-reconciler/internal/usecase"
)

type reconcileTeamsRequest struct {
	Sport         string            `json:"sport" validate:"required,max=64"`
	League        *string           `json:"league" validate:"omitempty,max=128"`
	IncludeStored bool              `json:"include_stored"`
	Teams         []rawdata.Payload `json:"teams" validate:"max=10000"`
}

type reconcileGamesRequest struct {
	Sport         string            `json:"sport" validate:"required,max=64"`
	League        *string           `json:"league" validate:"omitempty,max=128"`
	IncludeStored bool              `json:"include_stored"`
	Games         []rawdata.Payload `json:"games" validate:"max=10000"`
}

type liveGamesRequest struct {
	Sport              string            `json:"sport" validate:"required,max=64"`
	League             *string           `json:"league" validate:"omitempty,max=128"`
	IncludeStored      bool              `json:"include_stored"`
	GraceWindowMinutes *int              `json:"grace_window_minutes" validate:"omitempty,gte=0,lte=1440"`
	Games              []rawdata.Payload `json:"games" validate:"max=10000"`
}

type liveGamesResponse struct {
	Games []game.Game `json:"games"`
}

func (r reconcileTeamsRequest) toInput() usecase.TeamBatchInput {
	return usecase.TeamBatchInput{
		Sport:         r.Sport,
		League:        r.League,
		IncludeStored: r.IncludeStored,
		Teams:         r.Teams,
	}
}

func (r reconcileGamesRequest) toInput() usecase.GameBatchInput {
	return usecase.GameBatchInput{
		Sport:         r.Sport,
		League:        r.League,
		IncludeStored: r.IncludeStored,
		Games:         r.Games,
	}
}

func (r liveGamesRequest) toInput() usecase.LiveGamesInput {
	return usecase.LiveGamesInput{
		Sport:              r.Sport,
		League:             r.League,
		IncludeStored:      r.IncludeStored,
		GraceWindowMinutes: r.GraceWindowMinutes,
		Games:              r.Games,
	}
}
