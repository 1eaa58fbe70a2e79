package team

// Outcome is the result of one match from one team's point of view.
type Outcome int

const (
	OutcomeLoss Outcome = iota
	OutcomeDraw
	OutcomeWin
)

const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

// Classify is the only place a score pair is turned into an outcome, so
// apply and reverse can never disagree.
func Classify(goalsFor, goalsAgainst int) Outcome {
	switch {
	case goalsFor > goalsAgainst:
		return OutcomeWin
	case goalsFor == goalsAgainst:
		return OutcomeDraw
	default:
		return OutcomeLoss
	}
}

func (o Outcome) Points() int {
	switch o {
	case OutcomeWin:
		return PointsWin
	case OutcomeDraw:
		return PointsDraw
	default:
		return PointsLoss
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeDraw:
		return "draw"
	default:
		return "loss"
	}
}
