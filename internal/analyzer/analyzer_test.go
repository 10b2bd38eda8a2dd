package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caselens/legal-advisor/apimodels"
	"github.com/caselens/legal-advisor/internal/agent"
	"github.com/caselens/legal-advisor/internal/config"
)

const testCase = "A tenant was evicted without 30 days notice in violation of local housing law."

type fakeAgent struct {
	trace *agent.Trace
	err   error
	calls int
}

func (f *fakeAgent) Run(ctx context.Context, question string, onPhase agent.PhaseFunc) (*agent.Trace, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.trace, nil
}

type fakeSummarizer struct {
	statuses map[string]string // url -> status, default success
}

func (f *fakeSummarizer) Summarize(ctx context.Context, urls []string) []apimodels.LinkSummary {
	out := make([]apimodels.LinkSummary, len(urls))
	for i, u := range urls {
		status := apimodels.LinkStatusSuccess
		if s, ok := f.statuses[u]; ok {
			status = s
		}
		out[i] = apimodels.LinkSummary{URL: u, Title: "title of " + u, Summary: "summary", Status: status}
	}
	return out
}

func newTestAnalyzer(ag agent.Agent, sum Summarizer) *Analyzer {
	return New(ag, sum, &config.AnalysisConfig{MinCaseLength: 50})
}

func TestAnalyzeStepNumbering(t *testing.T) {
	ag := &fakeAgent{trace: &agent.Trace{
		InitialQueries: []string{"q1", "q2"},
		Revised:        true,
		Answer:         "the analysis",
	}}
	a := newTestAnalyzer(ag, &fakeSummarizer{})

	resp, err := a.Analyze(context.Background(), testCase, false)
	require.NoError(t, err)

	assert.Equal(t, resp.TotalSteps, len(resp.ThinkingSteps))
	for i, step := range resp.ThinkingSteps {
		assert.Equal(t, i+1, step.StepNumber, "step numbers must be contiguous from 1")
		assert.False(t, step.Timestamp.IsZero())
	}
	require.Len(t, resp.ThinkingSteps, 2)
	assert.Equal(t, "Initial Analysis", resp.ThinkingSteps[0].StepName)
	assert.Contains(t, resp.ThinkingSteps[0].Details, "2 search queries")
	assert.Equal(t, "Research & Revision", resp.ThinkingSteps[1].StepName)
}

func TestAnalyzeNoRevisionPhase(t *testing.T) {
	ag := &fakeAgent{trace: &agent.Trace{Answer: "the analysis"}}
	a := newTestAnalyzer(ag, &fakeSummarizer{})

	resp, err := a.Analyze(context.Background(), testCase, false)
	require.NoError(t, err)

	require.Len(t, resp.ThinkingSteps, 1)
	assert.Equal(t, 1, resp.ThinkingSteps[0].StepNumber)
	assert.Contains(t, resp.ThinkingSteps[0].Details, "0 search queries")
	assert.Equal(t, 1, resp.TotalSteps)
}

func TestAnalyzeValidationShortCircuits(t *testing.T) {
	ag := &fakeAgent{trace: &agent.Trace{Answer: "x"}}
	a := newTestAnalyzer(ag, &fakeSummarizer{})

	_, err := a.Analyze(context.Background(), "too short", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Zero(t, ag.calls, "agent must not be invoked for invalid input")
}

func TestAnalyzeAgentFailure(t *testing.T) {
	ag := &fakeAgent{err: errors.New("network down")}
	a := newTestAnalyzer(ag, &fakeSummarizer{})

	resp, err := a.Analyze(context.Background(), testCase, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAgentInvocation))
	assert.Nil(t, resp, "no partial result on agent failure")
}

func TestAnalyzeReferenceHandling(t *testing.T) {
	ag := &fakeAgent{trace: &agent.Trace{
		Answer: "the analysis",
		CitedURLs: []string{
			"https://a.example/1",
			"https://b.example/2",
			"https://a.example/1", // duplicate
			"not-a-url",
			"  ",
		},
	}}
	sum := &fakeSummarizer{statuses: map[string]string{
		"https://b.example/2": apimodels.LinkStatusError,
	}}
	a := newTestAnalyzer(ag, sum)

	resp, err := a.Analyze(context.Background(), testCase, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example/1", "https://b.example/2"}, resp.References)
	require.Len(t, resp.LinkSummaries, len(resp.References))
	for i, ls := range resp.LinkSummaries {
		assert.Equal(t, resp.References[i], ls.URL, "summaries must align with references")
	}
	assert.Equal(t, []string{"https://a.example/1"}, resp.SuccessfulReferences)
}

func TestAnalyzeResponseMetadata(t *testing.T) {
	ag := &fakeAgent{trace: &agent.Trace{Answer: "the analysis"}}
	a := newTestAnalyzer(ag, &fakeSummarizer{})

	resp, err := a.Analyze(context.Background(), testCase, false)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.CaseName, "Case Analysis - "))
	assert.False(t, resp.AnalysisDate.IsZero())
	assert.GreaterOrEqual(t, resp.ProcessingTime, 0.0)
	assert.NotEmpty(t, resp.FinalAnswer)
	assert.Empty(t, resp.FormattedAnalysis)
}

func TestAnalyzeFormattedVariant(t *testing.T) {
	ag := &fakeAgent{trace: &agent.Trace{Answer: "## Executive Summary\nAll good."}}
	a := newTestAnalyzer(ag, &fakeSummarizer{})

	resp, err := a.Analyze(context.Background(), testCase, true)
	require.NoError(t, err)
	assert.Contains(t, resp.FormattedAnalysis, "## Executive Summary")
}

// phasingAgent reports every reasoning phase through the callback.
type phasingAgent struct {
	trace *agent.Trace
}

func (p *phasingAgent) Run(ctx context.Context, question string, onPhase agent.PhaseFunc) (*agent.Trace, error) {
	if onPhase != nil {
		onPhase(agent.PhaseDraft, "draft done")
		onPhase(agent.PhaseResearch, "research done")
		onPhase(agent.PhaseRevision, "revision done")
	}
	return p.trace, nil
}

func TestAnalyzeStreamValidatesBeforeFirstEvent(t *testing.T) {
	ag := &fakeAgent{trace: &agent.Trace{Answer: "x"}}
	a := newTestAnalyzer(ag, &fakeSummarizer{})

	var events []apimodels.StreamEvent
	err := a.AnalyzeStream(context.Background(), "too short", false, func(ev apimodels.StreamEvent) {
		events = append(events, ev)
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Empty(t, events, "no frames before validation passes")
	assert.Zero(t, ag.calls)
}

func TestAnalyzeStreamNumbersStepEvents(t *testing.T) {
	ag := &phasingAgent{trace: &agent.Trace{Revised: true, Answer: "the analysis"}}
	a := newTestAnalyzer(ag, &fakeSummarizer{})

	var steps []apimodels.StreamEvent
	err := a.AnalyzeStream(context.Background(), testCase, false, func(ev apimodels.StreamEvent) {
		if ev.Type == "step_complete" {
			steps = append(steps, ev)
		}
	})
	require.NoError(t, err)

	require.Len(t, steps, 3)
	for i, ev := range steps {
		assert.Equal(t, i+1, ev.StepNumber, "stream step numbers must be contiguous from 1")
	}
}

func TestAnalyzeStreamEmitsTerminalEvent(t *testing.T) {
	ag := &fakeAgent{trace: &agent.Trace{Answer: "the analysis"}}
	a := newTestAnalyzer(ag, &fakeSummarizer{})

	var events []apimodels.StreamEvent
	err := a.AnalyzeStream(context.Background(), testCase, true, func(ev apimodels.StreamEvent) {
		events = append(events, ev)
	})
	require.NoError(t, err)

	require.NotEmpty(t, events)
	assert.Equal(t, "start", events[0].Type)
	last := events[len(events)-1]
	assert.Equal(t, "complete", last.Type)
	require.NotNil(t, last.Result)
	assert.Equal(t, last.Result.TotalSteps, len(last.Result.ThinkingSteps))
}
