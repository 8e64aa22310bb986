package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
	rawdatamock "github.com/riskibarqy/sports-reconciler/internal/mocks/domain/rawdata"
	basecache "github.com/riskibarqy/sports-reconciler/internal/platform/cache"
)

func newTestStore() *basecache.Store {
	return basecache.NewStore(basecache.Config{TTL: time.Minute, SweepInterval: time.Minute, MaxEntries: 16})
}

func TestRawDataRepository_CachesByScope(t *testing.T) {
	ctx := context.Background()
	next := rawdatamock.NewRepository(t)
	next.On("ListTeamRows", mock.Anything, "Soccer", "Liga 1").
		Return([]rawdata.Payload{{"name": "Persib Bandung"}}, nil).
		Once()

	repo := NewRawDataRepository(next, newTestStore())

	first, err := repo.ListTeamRows(ctx, "Soccer", "Liga 1")
	require.NoError(t, err)
	require.Len(t, first, 1)

	first[0]["name"] = "mutated"

	second, err := repo.ListTeamRows(ctx, "soccer", "liga 1")
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.Equal(t, "Persib Bandung", second[0]["name"])
}

func TestRawDataRepository_TeamAndGameKeysAreDistinct(t *testing.T) {
	ctx := context.Background()
	next := rawdatamock.NewRepository(t)
	next.On("ListTeamRows", mock.Anything, "soccer", "").Return([]rawdata.Payload{{"name": "Arema"}}, nil).Once()
	next.On("ListGameRows", mock.Anything, "soccer", "").Return([]rawdata.Payload{{"home": "Arema", "away": "Persija"}}, nil).Once()

	repo := NewRawDataRepository(next, newTestStore())

	teams, err := repo.ListTeamRows(ctx, "soccer", "")
	require.NoError(t, err)
	games, err := repo.ListGameRows(ctx, "soccer", "")
	require.NoError(t, err)

	require.Equal(t, "Arema", teams[0]["name"])
	require.Equal(t, "Persija", games[0]["away"])
}

func TestRawDataRepository_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	next := rawdatamock.NewRepository(t)
	next.On("ListGameRows", mock.Anything, "soccer", "").Return(nil, errors.New("timeout")).Once()
	next.On("ListGameRows", mock.Anything, "soccer", "").Return([]rawdata.Payload{{"id": "g1"}}, nil).Once()

	repo := NewRawDataRepository(next, newTestStore())

	_, err := repo.ListGameRows(ctx, "soccer", "")
	require.Error(t, err)

	games, err := repo.ListGameRows(ctx, "soccer", "")
	require.NoError(t, err)
	require.Len(t, games, 1)
}
