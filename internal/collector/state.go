package collector

// State is the position of a collection loop in its conversation.
type State int

// Collection states. A loop starts in AwaitingSubject and ends in Done,
// which is reached only through a negative continue answer.
const (
	AwaitingSubject State = iota
	AwaitingGrade
	AwaitingContinue
	Done
)

func (s State) String() string {
	switch s {
	case AwaitingSubject:
		return "awaiting_subject"
	case AwaitingGrade:
		return "awaiting_grade"
	case AwaitingContinue:
		return "awaiting_continue"
	case Done:
		return "done"
	}
	return "unknown"
}

// Advance returns the state that follows an accepted answer in s.
// more is only consulted in AwaitingContinue.
func (s State) Advance(more bool) State {
	switch s {
	case AwaitingSubject:
		return AwaitingGrade
	case AwaitingGrade:
		return AwaitingContinue
	case AwaitingContinue:
		if more {
			return AwaitingSubject
		}
		return Done
	}
	return Done
}

// Prompt returns the question asked in s, or "" in Done.
func (s State) Prompt() string {
	switch s {
	case AwaitingSubject:
		return PromptSubject
	case AwaitingGrade:
		return PromptGrade
	case AwaitingContinue:
		return PromptContinue
	}
	return ""
}
