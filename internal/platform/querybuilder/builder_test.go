package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("game_public_id", "revision").
		From("live_games").
		Where(Eq("team_public_id", "t1"), NotEq("status", "DONE"), IsNull("deleted_at")).
		OrderBy("game_public_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT game_public_id, revision FROM live_games WHERE team_public_id = $1 AND status <> $2 AND deleted_at IS NULL ORDER BY game_public_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "t1" || args[1] != "DONE" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderRequiresTable(t *testing.T) {
	if _, _, err := Select("*").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("games").
		Columns("public_id", "name").
		Values("g1", "Derby").
		Suffix("ON CONFLICT (public_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO games (public_id, name) VALUES ($1, $2) ON CONFLICT (public_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "g1" || args[1] != "Derby" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertInto("games").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("live_games").
		Set("revision", int64(4)).
		SetExpr("updated_at", "NOW()").
		Where(Eq("game_public_id", "g1"), Eq("revision", int64(3)), Expr("NOT (status = ANY(?))", []string{"DONE"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE live_games SET revision = $1, updated_at = NOW() WHERE game_public_id = $2 AND revision = $3 AND NOT (status = ANY($4))"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != int64(4) || args[1] != "g1" || args[2] != int64(3) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilderRequiresConditions(t *testing.T) {
	if _, _, err := Update("live_games").Set("revision", 1).ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional update")
	}
}

type rowModel struct {
	ID        string    `db:"player_public_id"`
	Number    int       `db:"uniform_number,omitempty"`
	Ignored   string    `db:"-"`
	CreatedAt time.Time `db:"created_at"`
	hidden    string
}

func TestInsertModels(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []rowModel{
		{ID: "p1", Number: 7, CreatedAt: now, hidden: "x"},
		{ID: "p2", Number: 9, CreatedAt: now},
	}

	query, args, err := InsertModels("roster_players", rows, "")
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}

	wantQuery := "INSERT INTO roster_players (player_public_id, uniform_number, created_at) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[3] != "p2" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[rowModel]("roster_players", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}

func TestInsertModel(t *testing.T) {
	query, args, err := InsertModel("roster_players", &rowModel{ID: "p1"}, "ON CONFLICT DO NOTHING")
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}
	if query != "INSERT INTO roster_players (player_public_id, uniform_number, created_at) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 3 || args[0] != "p1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModel("roster_players", (*rowModel)(nil), ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
	if _, _, err := InsertModel("roster_players", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}
