package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caselens/legal-advisor/apimodels"
	"github.com/caselens/legal-advisor/internal/agent"
	"github.com/caselens/legal-advisor/internal/config"
)

const caseNamePrefix = "Case Analysis - "

var (
	// ErrValidation marks a bad or missing case description. Surfaced as a
	// client error.
	ErrValidation = errors.New("invalid case description")

	// ErrAgentInvocation marks an unreachable agent or an unusable trace.
	// Surfaced as a server error; not retried.
	ErrAgentInvocation = errors.New("agent invocation failed")
)

// Summarizer produces one LinkSummary per URL, never failing as a whole.
type Summarizer interface {
	Summarize(ctx context.Context, urls []string) []apimodels.LinkSummary
}

// Analyzer owns the lifecycle of one case analysis: validate, run the
// reasoning agent, synthesize thinking steps from its trace, summarize the
// cited references, and assemble the response. It holds no per-request
// state and is safe for concurrent use.
type Analyzer struct {
	agent         agent.Agent
	summarizer    Summarizer
	minCaseLength int
}

func New(ag agent.Agent, summarizer Summarizer, cfg *config.AnalysisConfig) *Analyzer {
	return &Analyzer{
		agent:         ag,
		summarizer:    summarizer,
		minCaseLength: cfg.MinCaseLength,
	}
}

// Analyze runs the full pipeline. When formatted is true the response also
// carries the sectioned-document rendering of the final answer.
func (a *Analyzer) Analyze(ctx context.Context, caseDescription string, formatted bool) (*apimodels.AnalysisResponse, error) {
	return a.run(ctx, caseDescription, formatted, nil)
}

// AnalyzeStream runs the full pipeline, emitting progress events as they
// happen and a terminal "complete" event carrying the result. Validation
// and agent failures are returned, not emitted.
func (a *Analyzer) AnalyzeStream(ctx context.Context, caseDescription string, formatted bool, emit func(apimodels.StreamEvent)) error {
	// Reject bad input before any frame goes out
	if err := a.validate(caseDescription); err != nil {
		return err
	}

	emit(apimodels.StreamEvent{
		Type:      "start",
		Message:   "Legal analysis initiated",
		Timestamp: time.Now(),
	})

	stepNumber := 0
	result, err := a.run(ctx, caseDescription, formatted, func(phase agent.Phase, detail string) {
		stepNumber++
		emit(apimodels.StreamEvent{
			Type:        "step_complete",
			StepNumber:  stepNumber,
			StepName:    phaseStepName(phase),
			Description: detail,
			Timestamp:   time.Now(),
		})
	})
	if err != nil {
		return err
	}

	emit(apimodels.StreamEvent{
		Type:      "complete",
		Message:   "Legal analysis completed",
		Timestamp: time.Now(),
		Result:    result,
	})
	return nil
}

func (a *Analyzer) run(ctx context.Context, caseDescription string, formatted bool, onPhase agent.PhaseFunc) (*apimodels.AnalysisResponse, error) {
	if err := a.validate(caseDescription); err != nil {
		return nil, err
	}

	slog.Info("Starting analysis", "length", len(caseDescription), "formatted", formatted)
	startTime := time.Now()

	trace, err := a.agent.Run(ctx, caseDescription, onPhase)
	if err != nil {
		slog.Error("Agent run failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrAgentInvocation, err)
	}

	steps := synthesizeSteps(trace)
	references := dedupeURLs(trace.References())
	summaries := a.summarizer.Summarize(ctx, references)

	successful := make([]string, 0, len(summaries))
	for _, s := range summaries {
		if s.Status == apimodels.LinkStatusSuccess {
			successful = append(successful, s.URL)
		}
	}

	resp := &apimodels.AnalysisResponse{
		CaseName:             caseNamePrefix + startTime.Format("2006-01-02 15:04"),
		AnalysisDate:         startTime,
		ThinkingSteps:        steps,
		FinalAnswer:          trace.FinalAnswer(),
		References:           references,
		LinkSummaries:        summaries,
		SuccessfulReferences: successful,
		TotalSteps:           len(steps),
		ProcessingTime:       time.Since(startTime).Seconds(),
	}
	if formatted {
		resp.FormattedAnalysis = FormatAnalysis(trace.FinalAnswer())
	}

	slog.Info("Analysis completed",
		"steps", resp.TotalSteps,
		"references", len(references),
		"duration", time.Since(startTime),
	)
	return resp, nil
}

func (a *Analyzer) validate(caseDescription string) error {
	trimmed := strings.TrimSpace(caseDescription)
	if len(trimmed) < a.minCaseLength {
		return fmt.Errorf("%w: case description must be at least %d characters long", ErrValidation, a.minCaseLength)
	}
	return nil
}

// synthesizeSteps reconstructs human-readable thinking steps from the
// agent's trace. Numbering is 1-based and contiguous: the revision step,
// when absent, leaves no gap.
func synthesizeSteps(trace *agent.Trace) []apimodels.ThinkingStep {
	steps := []apimodels.ThinkingStep{
		{
			StepNumber:  1,
			StepName:    "Initial Analysis",
			Description: "Analyzing case facts and identifying key legal issues",
			Details:     fmt.Sprintf("%d search queries issued", trace.InitialQueryCount()),
			Timestamp:   time.Now(),
		},
	}

	if trace.HadRevisionPhase() {
		steps = append(steps, apimodels.ThinkingStep{
			StepNumber:  2,
			StepName:    "Research & Revision",
			Description: "Researching legal authorities and revising the analysis",
			Details:     "Search results incorporated and citations added",
			Timestamp:   time.Now(),
		})
	}

	return steps
}

// dedupeURLs keeps absolute http(s) URLs only, first occurrence wins.
func dedupeURLs(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

func phaseStepName(phase agent.Phase) string {
	switch phase {
	case agent.PhaseDraft:
		return "Initial Analysis"
	case agent.PhaseResearch:
		return "Legal Research"
	case agent.PhaseRevision:
		return "Research & Revision"
	default:
		return string(phase)
	}
}
