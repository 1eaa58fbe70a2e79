package postgres

import "time"

type tournamentTableModel struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type tournamentInsertModel struct {
	Name        string `db:"name"`
	Description string `db:"description"`
	Status      string `db:"status"`
}

type insertedRow struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const returningInserted = "RETURNING id, created_at, updated_at"
