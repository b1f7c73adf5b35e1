package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/figreact"
	"github.com/fwojciec/figreact/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr[T any](v T) *T {
	return &v
}

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("creates run with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := &figreact.Run{
			InputPath: "src/App.tsx",
			InputHash: "0123456789abcdef",
		}

		err := svc.CreateRun(ctx, run)
		require.NoError(t, err)

		assert.NotEmpty(t, run.ID, "ID should be generated")
		assert.False(t, run.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("returns error for invalid run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		err := svc.CreateRun(context.Background(), &figreact.Run{})
		require.Error(t, err)
		assert.Equal(t, figreact.EINVALID, figreact.ErrorCode(err))
	})
}

func TestRunService_FindRunByID(t *testing.T) {
	t.Parallel()

	t.Run("returns run with all fields and reports", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := &figreact.Run{
			InputPath:   "src/List.tsx",
			InputHash:   "aaaa",
			OutputHash:  "bbbb",
			Changed:     true,
			Relabeled:   true,
			Components:  2,
			BytesIn:     900,
			BytesOut:    400,
			TokensIn:    250,
			TokensOut:   120,
			Diagnostics: 1,
			Reports: []figreact.ComponentReport{
				{Name: "Extracted1", OccurrenceCount: 5, Fingerprint: "00000000000000ff"},
				{Name: "Extracted2", OccurrenceCount: 3, Fingerprint: "000000000000abcd"},
			},
		}
		require.NoError(t, svc.CreateRun(ctx, run))

		found, err := svc.FindRunByID(ctx, run.ID)
		require.NoError(t, err)

		assert.Equal(t, run.ID, found.ID)
		assert.Equal(t, "src/List.tsx", found.InputPath)
		assert.Equal(t, "aaaa", found.InputHash)
		assert.Equal(t, "bbbb", found.OutputHash)
		assert.True(t, found.Changed)
		assert.True(t, found.Relabeled)
		assert.Equal(t, 2, found.Components)
		assert.Equal(t, 900, found.BytesIn)
		assert.Equal(t, 400, found.BytesOut)
		assert.Equal(t, 250, found.TokensIn)
		assert.Equal(t, 120, found.TokensOut)
		assert.Equal(t, 1, found.Diagnostics)
		assert.Equal(t, run.Reports, found.Reports)
		assert.WithinDuration(t, run.CreatedAt, found.CreatedAt, 1e9)
	})

	t.Run("returns ENOTFOUND for missing run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		_, err := svc.FindRunByID(context.Background(), "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, figreact.ENOTFOUND, figreact.ErrorCode(err))
	})
}

func TestRunService_FindRuns(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, svc *sqlite.RunService) {
		t.Helper()
		ctx := context.Background()
		for _, run := range []*figreact.Run{
			{InputPath: "a.tsx", InputHash: "1", Changed: true, Components: 1},
			{InputPath: "b.tsx", InputHash: "2"},
			{InputPath: "a.tsx", InputHash: "3", Changed: true, Components: 2},
		} {
			require.NoError(t, svc.CreateRun(ctx, run))
		}
	}

	t.Run("returns all runs newest first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		seed(t, svc)

		runs, err := svc.FindRuns(context.Background(), figreact.RunFilter{})
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, "3", runs[0].InputHash)
		assert.Equal(t, "2", runs[1].InputHash)
		assert.Equal(t, "1", runs[2].InputHash)
	})

	t.Run("filters by input path", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		seed(t, svc)

		runs, err := svc.FindRuns(context.Background(), figreact.RunFilter{InputPath: ptr("a.tsx")})
		require.NoError(t, err)
		require.Len(t, runs, 2)
		for _, run := range runs {
			assert.Equal(t, "a.tsx", run.InputPath)
		}
	})

	t.Run("filters by changed flag", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		seed(t, svc)

		runs, err := svc.FindRuns(context.Background(), figreact.RunFilter{Changed: ptr(false)})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "b.tsx", runs[0].InputPath)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		seed(t, svc)

		runs, err := svc.FindRuns(context.Background(), figreact.RunFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "2", runs[0].InputHash)
	})

	t.Run("does not load reports", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()
		require.NoError(t, svc.CreateRun(ctx, &figreact.Run{
			InputPath:  "c.tsx",
			InputHash:  "4",
			Components: 1,
			Reports:    []figreact.ComponentReport{{Name: "Extracted1", OccurrenceCount: 2}},
		}))

		runs, err := svc.FindRuns(ctx, figreact.RunFilter{})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, 1, runs[0].Components)
		assert.Empty(t, runs[0].Reports)
	})
}
