package postgres

import "time"

type playerTableModel struct {
	ID           int64     `db:"id"`
	TeamID       int64     `db:"team_id"`
	Name         string    `db:"name"`
	Position     string    `db:"position"`
	JerseyNumber int       `db:"jersey_number"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	TeamID       int64  `db:"team_id"`
	Name         string `db:"name"`
	Position     string `db:"position"`
	JerseyNumber int    `db:"jersey_number"`
}
