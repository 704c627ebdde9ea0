package entity

const (
	StatusNotStarted = "not_started"
	StatusOngoing    = "ongoing"
	StatusFinished   = "finished"
)

type OutcomeKind string

const (
	OutcomeNoOp     OutcomeKind = "noop"
	OutcomeContinue OutcomeKind = "continue"
	OutcomeWin      OutcomeKind = "win"
	OutcomeTie      OutcomeKind = "tie"
)

// Outcome is the result of a single move.
type Outcome struct {
	Kind   OutcomeKind
	Winner Player
	// Reason is set for OutcomeNoOp only.
	Reason error
}

func Continue() Outcome {
	return Outcome{Kind: OutcomeContinue}
}

func Win(player Player) Outcome {
	return Outcome{Kind: OutcomeWin, Winner: player}
}

func Tie() Outcome {
	return Outcome{Kind: OutcomeTie}
}

func NoOp(reason error) Outcome {
	return Outcome{Kind: OutcomeNoOp, Reason: reason}
}

func (that Outcome) IsTerminal() bool {
	return that.Kind == OutcomeWin || that.Kind == OutcomeTie
}
