package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/liga-fantasy/internal/domain/roster"
	qb "github.com/riskibarqy/liga-fantasy/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

var rosterSelectColumns = []string{
	"id",
	"public_id",
	"user_public_id",
	"game_week_id",
	"captain_public_id",
	"vice_captain_public_id",
	"points",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) GetByUserAndWeek(ctx context.Context, userID string, gameWeekID int) (roster.Roster, bool, error) {
	query, args, err := qb.Select(rosterSelectColumns...).From("rosters").
		Where(
			qb.Eq("user_public_id", userID),
			qb.Eq("game_week_id", gameWeekID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return roster.Roster{}, false, fmt.Errorf("build select roster query: %w", err)
	}

	var row rosterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) {
			return r.getByUserAndWeekLiteral(ctx, userID, gameWeekID)
		}
		if isNotFound(err) {
			return roster.Roster{}, false, nil
		}
		return roster.Roster{}, false, fmt.Errorf("get roster: %w", err)
	}

	playerIDs, err := r.listMembers(ctx, row.PublicID)
	if err != nil {
		return roster.Roster{}, false, err
	}

	return row.toDomain(playerIDs), true, nil
}

// getByUserAndWeekLiteral sidesteps the extended protocol when a pooled
// connection loses its prepared statement mid-flight.
func (r *RosterRepository) getByUserAndWeekLiteral(ctx context.Context, userID string, gameWeekID int) (roster.Roster, bool, error) {
	query := "SELECT " + strings.Join(rosterSelectColumns, ", ") +
		" FROM rosters WHERE user_public_id = " + quoteLiteral(userID) +
		" AND game_week_id = " + strconv.Itoa(gameWeekID) +
		" AND deleted_at IS NULL"

	var row rosterTableModel
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if isNotFound(err) {
			return roster.Roster{}, false, nil
		}
		return roster.Roster{}, false, fmt.Errorf("get roster literal fallback: %w", err)
	}

	playerIDs, err := r.listMembers(ctx, row.PublicID)
	if err != nil {
		return roster.Roster{}, false, err
	}

	return row.toDomain(playerIDs), true, nil
}

func (r *RosterRepository) GetLatestBefore(ctx context.Context, userID string, gameWeekID int) (roster.Roster, bool, error) {
	query, args, err := qb.Select(rosterSelectColumns...).From("rosters").
		Where(
			qb.Eq("user_public_id", userID),
			qb.Expr("game_week_id < ?", gameWeekID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("game_week_id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return roster.Roster{}, false, fmt.Errorf("build select prior roster query: %w", err)
	}

	var row rosterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Roster{}, false, nil
		}
		return roster.Roster{}, false, fmt.Errorf("get prior roster: %w", err)
	}

	playerIDs, err := r.listMembers(ctx, row.PublicID)
	if err != nil {
		return roster.Roster{}, false, err
	}

	return row.toDomain(playerIDs), true, nil
}

func (r *RosterRepository) Create(ctx context.Context, item roster.Roster) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for roster create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertInto("rosters").
		Columns("public_id", "user_public_id", "game_week_id", "captain_public_id", "vice_captain_public_id", "points").
		Values(item.ID, item.UserID, item.GameWeekID, nullableString(item.CaptainID), nullableString(item.ViceCaptainID), item.Points).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert roster query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert roster: %w", err)
	}

	if err := insertMembers(ctx, tx, item.ID, item.PlayerIDs, 0); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster create: %w", err)
	}
	return nil
}

// CommitMutation writes the batch outcome atomically: replaced membership,
// captaincy, the owner's new balance and per-player transfer counters.
func (r *RosterRepository) CommitMutation(ctx context.Context, m roster.Mutation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for roster mutation: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update("rosters").
		Set("captain_public_id", nullableString(m.Roster.CaptainID)).
		Set("vice_captain_public_id", nullableString(m.Roster.ViceCaptainID)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", m.Roster.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update roster query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update roster: %w", err)
	}

	const deleteMembersQuery = `DELETE FROM roster_players WHERE roster_public_id = $1`
	if _, err := tx.ExecContext(ctx, deleteMembersQuery, m.Roster.ID); err != nil {
		return fmt.Errorf("clear roster members: %w", err)
	}
	if err := insertMembers(ctx, tx, m.Roster.ID, m.Roster.PlayerIDs, 0); err != nil {
		return err
	}

	const balanceQuery = `UPDATE users SET balance = $1, updated_at = NOW() WHERE public_id = $2 AND deleted_at IS NULL`
	if _, err := tx.ExecContext(ctx, balanceQuery, m.NewBalance, m.Roster.UserID); err != nil {
		return fmt.Errorf("update user balance: %w", err)
	}

	const transferInQuery = `UPDATE players SET transfers_in = transfers_in + 1, updated_at = NOW() WHERE public_id = $1 AND deleted_at IS NULL`
	for _, playerID := range m.TransfersIn {
		if _, err := tx.ExecContext(ctx, transferInQuery, playerID); err != nil {
			return fmt.Errorf("increment transfers in player=%s: %w", playerID, err)
		}
	}

	const transferOutQuery = `UPDATE players SET transfers_out = transfers_out + 1, updated_at = NOW() WHERE public_id = $1 AND deleted_at IS NULL`
	for _, playerID := range m.TransfersOut {
		if _, err := tx.ExecContext(ctx, transferOutQuery, playerID); err != nil {
			return fmt.Errorf("increment transfers out player=%s: %w", playerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster mutation: %w", err)
	}
	return nil
}

func (r *RosterRepository) ListByWeek(ctx context.Context, gameWeekID int) ([]roster.Roster, error) {
	query, args, err := qb.Select(rosterSelectColumns...).From("rosters").
		Where(
			qb.Eq("game_week_id", gameWeekID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rosters query: %w", err)
	}

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rosters by week: %w", err)
	}

	out := make([]roster.Roster, 0, len(rows))
	for _, row := range rows {
		playerIDs, err := r.listMembers(ctx, row.PublicID)
		if err != nil {
			return nil, err
		}
		out = append(out, row.toDomain(playerIDs))
	}
	return out, nil
}

func (r *RosterRepository) UpdatePoints(ctx context.Context, rosterID string, points int) error {
	query, args, err := qb.Update("rosters").
		Set("points", points).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", rosterID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update roster points query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update roster points: %w", err)
	}
	return nil
}

func (r *RosterRepository) CountOwnersByPlayer(ctx context.Context, gameWeekID int) (map[string]int, error) {
	const query = `
SELECT rp.player_public_id, COUNT(DISTINCT r.user_public_id) AS owner_count
FROM roster_players rp
JOIN rosters r ON r.public_id = rp.roster_public_id
WHERE r.game_week_id = $1
  AND r.deleted_at IS NULL
GROUP BY rp.player_public_id`

	// Aggregates come back as text when binary results are disabled for
	// the pooler, so the count is decoded by hand.
	var rows []struct {
		PlayerPublicID string         `db:"player_public_id"`
		OwnerCount     sql.NullString `db:"owner_count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, gameWeekID); err != nil {
		return nil, fmt.Errorf("count roster owners by player: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.PlayerPublicID] = int(nullStringToInt64(row.OwnerCount))
	}
	return out, nil
}

func (r *RosterRepository) listMembers(ctx context.Context, rosterID string) ([]string, error) {
	const query = `
SELECT player_public_id
FROM roster_players
WHERE roster_public_id = $1
ORDER BY position`

	var playerIDs []string
	if err := r.db.SelectContext(ctx, &playerIDs, query, rosterID); err != nil {
		return nil, fmt.Errorf("list roster members: %w", err)
	}
	return playerIDs, nil
}

func insertMembers(ctx context.Context, tx *sqlx.Tx, rosterID string, playerIDs []string, startPos int) error {
	const query = `INSERT INTO roster_players (roster_public_id, player_public_id, position) VALUES ($1, $2, $3)`
	for i, playerID := range playerIDs {
		if _, err := tx.ExecContext(ctx, query, rosterID, playerID, startPos+i); err != nil {
			return fmt.Errorf("insert roster member player=%s: %w", playerID, err)
		}
	}
	return nil
}
