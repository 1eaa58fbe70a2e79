package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID           int64         `db:"id"`
	TournamentID int64         `db:"tournament_id"`
	HomeTeamID   int64         `db:"home_team_id"`
	AwayTeamID   int64         `db:"away_team_id"`
	MatchDate    time.Time     `db:"match_date"`
	Field        string        `db:"field"`
	HomeScore    sql.NullInt64 `db:"home_score"`
	AwayScore    sql.NullInt64 `db:"away_score"`
	Status       string        `db:"status"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

type matchInsertModel struct {
	TournamentID int64         `db:"tournament_id"`
	HomeTeamID   int64         `db:"home_team_id"`
	AwayTeamID   int64         `db:"away_team_id"`
	MatchDate    time.Time     `db:"match_date"`
	Field        string        `db:"field"`
	HomeScore    sql.NullInt64 `db:"home_score"`
	AwayScore    sql.NullInt64 `db:"away_score"`
	Status       string        `db:"status"`
}
