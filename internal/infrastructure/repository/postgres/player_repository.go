package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
	qb "github.com/riskibarqy/liga-fantasy/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"real_team",
	"sport",
	"price",
	"total_points",
	"current_cycle_delta",
	"selection_rate",
	"transfers_in",
	"transfers_out",
	"matches",
	"goals",
	"assists",
	"yellow_cards",
	"red_cards",
	"minutes_played",
	"points",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	query, args, err := qb.InsertInto("players").
		Columns("public_id", "name", "real_team", "sport", "price", "total_points",
			"current_cycle_delta", "selection_rate", "transfers_in", "transfers_out",
			"matches", "goals", "assists", "yellow_cards", "red_cards", "minutes_played", "points").
		Values(item.ID, item.Name, item.RealTeam, string(item.Sport), item.Price, item.TotalPoints,
			item.CurrentCycleDelta, item.SelectionRate, item.TransfersIn, item.TransfersOut,
			item.Stats.Matches, item.Stats.Goals, item.Stats.Assists, item.Stats.YellowCards,
			item.Stats.RedCards, item.Stats.MinutesPlayed, item.Stats.Points).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []string) ([]player.Player, error) {
	if len(ids) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.In("public_id", stringSliceToAny(ids)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) List(ctx context.Context, filter player.ListFilter) ([]player.Player, error) {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if filter.Sport != "" {
		conditions = append(conditions, qb.Eq("sport", string(filter.Sport)))
	}
	if filter.RealTeam != "" {
		conditions = append(conditions, qb.Eq("real_team", filter.RealTeam))
	}

	builder := qb.Select(playerSelectColumns...).From("players").
		Where(conditions...).
		OrderBy("id")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	query, args, err := qb.Update("players").
		Set("name", item.Name).
		Set("real_team", item.RealTeam).
		Set("price", item.Price).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.Update("players").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) UpdateSettlement(ctx context.Context, id string, stats player.Stats, cycleDelta, totalPoints int) error {
	query, args, err := qb.Update("players").
		Set("matches", stats.Matches).
		Set("goals", stats.Goals).
		Set("assists", stats.Assists).
		Set("yellow_cards", stats.YellowCards).
		Set("red_cards", stats.RedCards).
		Set("minutes_played", stats.MinutesPlayed).
		Set("points", stats.Points).
		Set("current_cycle_delta", cycleDelta).
		Set("total_points", totalPoints).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player settlement query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player settlement: %w", err)
	}
	return nil
}

func (r *PlayerRepository) UpdatePrice(ctx context.Context, id string, price int64) error {
	query, args, err := qb.Update("players").
		Set("price", price).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player price query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player price: %w", err)
	}
	return nil
}

func (r *PlayerRepository) UpdateSelectionRates(ctx context.Context, rateByID map[string]float64) error {
	if len(rateByID) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for selection rates: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const resetQuery = `UPDATE players SET selection_rate = 0 WHERE deleted_at IS NULL`
	if _, err := tx.ExecContext(ctx, resetQuery); err != nil {
		return fmt.Errorf("reset selection rates: %w", err)
	}

	const updateQuery = `UPDATE players SET selection_rate = $1, updated_at = NOW() WHERE public_id = $2 AND deleted_at IS NULL`
	for id, rate := range rateByID {
		if _, err := tx.ExecContext(ctx, updateQuery, rate, id); err != nil {
			return fmt.Errorf("update selection rate player=%s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit selection rates: %w", err)
	}
	return nil
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
