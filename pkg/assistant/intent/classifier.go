package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"shop-assistant-be/internal/constant"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/pkg/llm"
)

// ToolCall is the structured decision of the classifier.
type ToolCall struct {
	ToolName   string                 `json:"tool_name"`
	Parameters map[string]interface{} `json:"parameters"`
	// Source records which path produced the call, so heuristic turns
	// stay distinguishable in logs.
	Source string `json:"-"`
}

// Query pulls the search terms out of a search_products call.
func (t *ToolCall) Query() string {
	if v, ok := t.Parameters["query"].(string); ok {
		return v
	}
	return ""
}

// OffersOnly pulls the promotions flag out of a search_products call.
func (t *ToolCall) OffersOnly() bool {
	v, _ := t.Parameters["offers_only"].(bool)
	return v
}

// Sort pulls the sort preference, defaulting to relevance.
func (t *ToolCall) Sort() string {
	if v, ok := t.Parameters["sort"].(string); ok && v != "" {
		return v
	}
	return constant.SortRelevance
}

// Classifier turns a raw message into a validated ToolCall. The LLM is
// the primary path; any transport or structural failure falls back to
// the keyword heuristic instead of failing the turn.
type Classifier struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewClassifier(provider llm.LLMProvider, log logger.ILogger) *Classifier {
	return &Classifier{
		provider: provider,
		logger:   log,
	}
}

func (c *Classifier) Classify(ctx context.Context, message string) *ToolCall {
	if c.provider != nil {
		call, err := c.classifyLLM(ctx, message)
		if err == nil {
			call.Source = constant.ClassifierSourceLLM
			return call
		}
		c.logger.Warn("intent", "llm classification failed, using heuristic", map[string]interface{}{
			"error": err.Error(),
		})
	}
	call := Heuristic(message)
	call.Source = constant.ClassifierSourceHeuristic
	return call
}

func (c *Classifier) classifyLLM(ctx context.Context, message string) (*ToolCall, error) {
	response, err := c.provider.Generate(ctx, constant.IntentClassifierPromptV1+message, llm.WithTemperature(0.0))
	if err != nil {
		return nil, err
	}
	return ParseToolCall(response)
}

// ParseToolCall extracts and validates the JSON tool call from a model
// response. Structural deviations are errors, never acted on.
func ParseToolCall(response string) (*ToolCall, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var call ToolCall
	if err := json.Unmarshal([]byte(jsonContent), &call); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}

	switch call.ToolName {
	case constant.ToolSearchProducts, constant.ToolViewCart, constant.ToolSmallTalk:
	default:
		return nil, fmt.Errorf("unknown tool %q", call.ToolName)
	}
	if call.Parameters == nil {
		call.Parameters = map[string]interface{}{}
	}
	if call.ToolName == constant.ToolSearchProducts && strings.TrimSpace(call.Query()) == "" {
		return nil, fmt.Errorf("search_products call without a query")
	}
	return &call, nil
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
