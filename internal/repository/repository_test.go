package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-props/internal/models"
)

const datasetPath = "testdata/dataset.json"

// TestLoadMemoryStore tests loading the JSON dataset
func TestLoadMemoryStore(t *testing.T) {
	store, err := LoadMemoryStore(datasetPath)
	require.NoError(t, err)
	ctx := context.Background()

	series, err := store.History(ctx, "237", models.StatPoints)
	require.NoError(t, err)
	assert.Equal(t, 25, series.Len())
	assert.True(t, series.HasMinutes())
	assert.Equal(t, "g001", series.GameIDs[0])

	short, err := store.History(ctx, "101", models.StatPoints)
	require.NoError(t, err)
	assert.False(t, short.HasMinutes())

	g, err := store.Context(ctx, "237", "g026")
	require.NoError(t, err)
	assert.Equal(t, models.Home, g.HomeAway)
	assert.Equal(t, 2, g.RestDays)

	odds, err := store.Odds(ctx, "237", models.StatPoints, 24.5)
	require.NoError(t, err)
	assert.Equal(t, -115, odds.Over)

	assert.ElementsMatch(t, []models.StatType{models.StatPoints, models.StatRebounds, models.StatAssists},
		store.Players()["237"])
}

// TestMemoryStoreNotFound tests missing records
func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.History(ctx, "nobody", models.StatPoints)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	_, err = store.Context(ctx, "nobody", "g1")
	assert.True(t, errors.Is(err, models.ErrNotFound))
	_, err = store.Odds(ctx, "nobody", models.StatPoints, 10.5)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, err = LoadMemoryStore("testdata/missing.json")
	assert.Error(t, err)
	err = store.Load(Dataset{Players: []PlayerRecord{{PlayerID: "x", Stats: map[models.StatType][]float64{"dunks": {1}}}}})
	assert.True(t, errors.Is(err, models.ErrUnknownStatType))
}

// TestMemoryStoreReturnsCopies tests that callers cannot mutate stored logs
func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	values := []float64{10, 12, 14}
	store.AddSeries(models.Series{PlayerID: "p", StatType: models.StatPoints, Values: values})
	values[0] = 99

	s, err := store.History(context.Background(), "p", models.StatPoints)
	require.NoError(t, err)
	assert.Equal(t, 10.0, s.Values[0])
	s.Values[1] = 99

	again, _ := store.History(context.Background(), "p", models.StatPoints)
	assert.Equal(t, 12.0, again.Values[1])

	store.SetOdds("p", models.StatPoints, models.StandardOdds(11.5))
	store.SetOdds("p", models.StatPoints, models.Odds{Line: 11.5, Over: 120, Under: -140})
	odds, err := store.Odds(context.Background(), "p", models.StatPoints, 11.5)
	require.NoError(t, err)
	assert.Equal(t, 120, odds.Over)
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

type fakeRows struct {
	rows [][]any
	pos  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return r.rows[r.pos-1], nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return assign(r.rows[r.pos-1], dest)
}

func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d values into %d targets", len(values), len(dest))
	}
	for i, v := range values {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *float64:
			*d = v.(float64)
		case *int:
			*d = v.(int)
		case **float64:
			if v == nil {
				*d = nil
			} else {
				f := v.(float64)
				*d = &f
			}
		default:
			return fmt.Errorf("scan: unsupported target %T", d)
		}
	}
	return nil
}

type fakeQuerier struct {
	rows    [][]any
	row     fakeRow
	lastSQL string
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.lastSQL = sql
	return &fakeRows{rows: q.rows}, nil
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	q.lastSQL = sql
	return q.row
}

func (q *fakeQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

// TestPostgresStoreHistory tests game log scanning and column selection
func TestPostgresStoreHistory(t *testing.T) {
	q := &fakeQuerier{rows: [][]any{
		{"g1", 7.0, 31.0},
		{"g2", 9.0, 34.0},
		{"g3", 4.0, nil},
	}}
	store := NewPostgresStore(q)

	series, err := store.History(context.Background(), "237", models.StatThrees)
	require.NoError(t, err)
	assert.Contains(t, q.lastSQL, "threes_made")
	assert.Equal(t, []float64{7, 9, 4}, series.Values)
	assert.Equal(t, []string{"g1", "g2", "g3"}, series.GameIDs)
	assert.Nil(t, series.Minutes)

	_, err = store.History(context.Background(), "237", "dunks; DROP TABLE x")
	assert.True(t, errors.Is(err, models.ErrUnknownStatType))

	_, err = NewPostgresStore(&fakeQuerier{}).History(context.Background(), "none", models.StatPoints)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

// TestPostgresStoreContextAndOdds tests single-row lookups
func TestPostgresStoreContextAndOdds(t *testing.T) {
	store := NewPostgresStore(&fakeQuerier{row: fakeRow{values: []any{1.05, 0, 112.0, "away", 30.0}}})
	g, err := store.Context(context.Background(), "237", "g9")
	require.NoError(t, err)
	assert.Equal(t, models.Away, g.HomeAway)
	assert.True(t, g.IsBackToBack())

	missing := NewPostgresStore(&fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}})
	_, err = missing.Context(context.Background(), "237", "g9")
	assert.True(t, errors.Is(err, models.ErrNotFound))
	_, err = missing.Odds(context.Background(), "237", models.StatPoints, 24.5)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	q := &fakeQuerier{row: fakeRow{values: []any{24.5, -120, 100}}}
	odds, err := NewPostgresStore(q).Odds(context.Background(), "237", models.StatPoints, 24.5)
	require.NoError(t, err)
	assert.Equal(t, models.Odds{Line: 24.5, Over: -120, Under: 100}, odds)
	assert.True(t, strings.Contains(q.lastSQL, "prop_odds"))
}

// TestDependencies tests provider wiring
func TestDependencies(t *testing.T) {
	store := NewMemoryStore()
	deps := Dependencies(store)
	assert.Same(t, store, deps.Stats)
	assert.Same(t, store, deps.Odds)

	_, err := NewPostgresDependencies(nil)
	assert.Error(t, err)
}
