package agent

import "context"

// Phase identifies a stage of the agent's reasoning, reported through the
// optional progress callback as each stage completes.
type Phase string

const (
	PhaseDraft    Phase = "draft"
	PhaseResearch Phase = "research"
	PhaseRevision Phase = "revision"
)

// PhaseFunc receives progress notifications during a run. Implementations
// must not block for long; they are called on the run's goroutine.
type PhaseFunc func(phase Phase, detail string)

// Agent produces a reasoning trace for a single natural-language question.
// onPhase may be nil.
type Agent interface {
	Run(ctx context.Context, question string, onPhase PhaseFunc) (*Trace, error)
}

// Trace is the narrow translation boundary between the agent's internals
// and the rest of the system. Callers read it only through its methods.
type Trace struct {
	InitialQueries []string
	Revised        bool
	Answer         string
	CitedURLs      []string
	TokensUsed     int64
}

// InitialQueryCount reports how many search queries the first pass issued.
func (t *Trace) InitialQueryCount() int { return len(t.InitialQueries) }

// HadRevisionPhase reports whether a distinct research-and-revision phase
// occurred.
func (t *Trace) HadRevisionPhase() bool { return t.Revised }

func (t *Trace) FinalAnswer() string { return t.Answer }

// References returns the raw list of URLs the final answer cites, in the
// order the agent produced them. May contain duplicates.
func (t *Trace) References() []string { return t.CitedURLs }
