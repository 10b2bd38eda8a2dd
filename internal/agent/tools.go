package agent

import (
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
)

const (
	toolAnswerQuestion = "AnswerQuestion"
	toolReviseAnswer   = "ReviseAnswer"
)

// answerArgs is the structured output of both agent tools. ReviseAnswer
// shares the shape; its references are required rather than optional.
type answerArgs struct {
	Answer        string   `json:"answer"`
	Reflection    string   `json:"reflection,omitempty"`
	SearchQueries []string `json:"search_queries,omitempty"`
	References    []string `json:"references,omitempty"`
}

func answerQuestionTool() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Type: openai.F(openai.ChatCompletionToolTypeFunction),
		Function: openai.F(openai.FunctionDefinitionParam{
			Name:        openai.F(toolAnswerQuestion),
			Description: openai.F("Record the initial legal analysis, a self-critique, and search queries for further research."),
			Parameters: openai.F(openai.FunctionParameters{
				"type": "object",
				"properties": map[string]interface{}{
					"answer": map[string]interface{}{
						"type":        "string",
						"description": "The full legal analysis report.",
					},
					"reflection": map[string]interface{}{
						"type":        "string",
						"description": "Severe critique of the answer: gaps, inconsistencies, areas needing research.",
					},
					"search_queries": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "1-3 web search queries for researching improvements.",
					},
					"references": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "URLs of authorities cited in the answer.",
					},
				},
				"required": []string{"answer", "reflection"},
			}),
		}),
	}
}

func reviseAnswerTool() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Type: openai.F(openai.ChatCompletionToolTypeFunction),
		Function: openai.F(openai.FunctionDefinitionParam{
			Name:        openai.F(toolReviseAnswer),
			Description: openai.F("Record the revised legal analysis incorporating the research results, with numerical citations."),
			Parameters: openai.F(openai.FunctionParameters{
				"type": "object",
				"properties": map[string]interface{}{
					"answer": map[string]interface{}{
						"type":        "string",
						"description": "The revised legal analysis report with citations.",
					},
					"references": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "URLs of the cited authorities.",
					},
				},
				"required": []string{"answer", "references"},
			}),
		}),
	}
}

func decodeToolArgs(name, expected, raw string) (*answerArgs, error) {
	if name != expected {
		return nil, fmt.Errorf("expected %s tool call, got %q", expected, name)
	}
	var args answerArgs
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("decoding %s arguments: %w", expected, err)
	}
	if args.Answer == "" {
		return nil, fmt.Errorf("%s returned an empty answer", expected)
	}
	return &args, nil
}
