package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"

	"github.com/caselens/legal-advisor/internal/llm"
	"github.com/caselens/legal-advisor/internal/search"
)

// Searcher runs one web search query. *search.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string) (*search.SearchResponse, error)
}

// Reflexion is a draft -> research -> revise reasoning agent. The first
// pass produces an answer plus a self-critique and search queries; the
// queries are executed against the web-search collaborator and the answer
// is revised with citations. When the draft produces no queries there is
// no revision phase.
type Reflexion struct {
	provider llm.Provider
	searcher Searcher
}

func NewReflexion(provider llm.Provider, searcher Searcher) *Reflexion {
	return &Reflexion{
		provider: provider,
		searcher: searcher,
	}
}

func (r *Reflexion) Run(ctx context.Context, question string, onPhase PhaseFunc) (*Trace, error) {
	slog.Info("Starting agent run")

	draft, usage, err := r.draft(ctx, question)
	if err != nil {
		return nil, err
	}
	notify(onPhase, PhaseDraft, fmt.Sprintf("Draft analysis produced with %d search queries", len(draft.SearchQueries)))

	trace := &Trace{
		InitialQueries: draft.SearchQueries,
		Answer:         draft.Answer,
		CitedURLs:      draft.References,
		TokensUsed:     usage,
	}

	if len(draft.SearchQueries) == 0 || r.searcher == nil {
		slog.Info("No research phase", "queries", len(draft.SearchQueries))
		return trace, nil
	}

	digest := r.research(ctx, draft.SearchQueries)
	notify(onPhase, PhaseResearch, fmt.Sprintf("Executed %d search queries", len(draft.SearchQueries)))

	revised, usage, err := r.revise(ctx, question, draft, digest)
	if err != nil {
		return nil, err
	}
	notify(onPhase, PhaseRevision, "Analysis revised with research findings")

	trace.Revised = true
	trace.Answer = revised.Answer
	trace.TokensUsed += usage
	if len(revised.References) > 0 {
		trace.CitedURLs = append(trace.CitedURLs, revised.References...)
	}

	slog.Info("Agent run completed", "revised", true, "tokens", trace.TokensUsed)
	return trace, nil
}

func (r *Reflexion) draft(ctx context.Context, question string) (*answerArgs, int64, error) {
	resp, err := r.provider.Complete(ctx,
		[]string{fmt.Sprintf(actorPrompt, firstInstruction)},
		[]string{question},
		llm.Option(func(o *llm.Options) {
			o.Tools = []openai.ChatCompletionToolParam{answerQuestionTool()}
			o.ForceTool = toolAnswerQuestion
		}),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("first responder call failed: %w", err)
	}
	if resp.ToolCall == nil {
		return nil, 0, fmt.Errorf("first responder returned no %s tool call", toolAnswerQuestion)
	}

	args, err := decodeToolArgs(resp.ToolCall.Name, toolAnswerQuestion, resp.ToolCall.Arguments)
	if err != nil {
		return nil, 0, err
	}
	return args, resp.Usage.TotalTokens, nil
}

// research executes the draft's search queries. Individual query failures
// are noted in the digest and do not abort the run.
func (r *Reflexion) research(ctx context.Context, queries []string) string {
	var b strings.Builder
	for _, q := range queries {
		resp, err := r.searcher.Search(ctx, q)
		if err != nil {
			slog.Warn("Search query failed", "query", q, "error", err)
			fmt.Fprintf(&b, "Query: %s\nSearch failed: %v\n\n", q, err)
			continue
		}
		fmt.Fprintf(&b, "Query: %s\n", q)
		for _, res := range resp.Results {
			fmt.Fprintf(&b, "- %s (%s)\n  %s\n", res.Title, res.URL, res.Content)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Reflexion) revise(ctx context.Context, question string, draft *answerArgs, digest string) (*answerArgs, int64, error) {
	userContent := fmt.Sprintf(
		"Case details:\n%s\n\nPrevious answer:\n%s\n\nCritique:\n%s\n\nResearch results:\n%s",
		question, draft.Answer, draft.Reflection, digest,
	)

	resp, err := r.provider.Complete(ctx,
		[]string{fmt.Sprintf(actorPrompt, reviseInstruction)},
		[]string{userContent},
		llm.Option(func(o *llm.Options) {
			o.Tools = []openai.ChatCompletionToolParam{reviseAnswerTool()}
			o.ForceTool = toolReviseAnswer
		}),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("revisor call failed: %w", err)
	}
	if resp.ToolCall == nil {
		return nil, 0, fmt.Errorf("revisor returned no %s tool call", toolReviseAnswer)
	}

	args, err := decodeToolArgs(resp.ToolCall.Name, toolReviseAnswer, resp.ToolCall.Arguments)
	if err != nil {
		return nil, 0, err
	}
	return args, resp.Usage.TotalTokens, nil
}

func notify(onPhase PhaseFunc, phase Phase, detail string) {
	if onPhase != nil {
		onPhase(phase, detail)
	}
}
