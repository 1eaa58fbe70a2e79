package postgres

import "time"

type teamTableModel struct {
	ID             int64     `db:"id"`
	TournamentID   int64     `db:"tournament_id"`
	Name           string    `db:"name"`
	CoachName      string    `db:"coach_name"`
	Points         int       `db:"points"`
	MatchesPlayed  int       `db:"matches_played"`
	Wins           int       `db:"wins"`
	Draws          int       `db:"draws"`
	Losses         int       `db:"losses"`
	GoalsFor       int       `db:"goals_for"`
	GoalsAgainst   int       `db:"goals_against"`
	GoalDifference int       `db:"goal_difference"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	TournamentID   int64  `db:"tournament_id"`
	Name           string `db:"name"`
	CoachName      string `db:"coach_name"`
	Points         int    `db:"points"`
	MatchesPlayed  int    `db:"matches_played"`
	Wins           int    `db:"wins"`
	Draws          int    `db:"draws"`
	Losses         int    `db:"losses"`
	GoalsFor       int    `db:"goals_for"`
	GoalsAgainst   int    `db:"goals_against"`
	GoalDifference int    `db:"goal_difference"`
}

type teamUpdateModel struct {
	Name           string `db:"name"`
	CoachName      string `db:"coach_name"`
	Points         int    `db:"points"`
	MatchesPlayed  int    `db:"matches_played"`
	Wins           int    `db:"wins"`
	Draws          int    `db:"draws"`
	Losses         int    `db:"losses"`
	GoalsFor       int    `db:"goals_for"`
	GoalsAgainst   int    `db:"goals_against"`
	GoalDifference int    `db:"goal_difference"`
}
