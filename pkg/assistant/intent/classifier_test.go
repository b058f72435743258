package intent

import (
	"testing"
)

func TestParseToolCall(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantTool string
		wantErr  bool
	}{
		{
			name:     "clean search call",
			response: `{"tool_name": "search_products", "parameters": {"query": "nescau", "offers_only": false, "sort": "relevance"}}`,
			wantTool: "search_products",
		},
		{
			name:     "json wrapped in prose",
			response: "Sure! Here it is:\n{\"tool_name\": \"view_cart\", \"parameters\": {}}\nDone.",
			wantTool: "view_cart",
		},
		{
			name:     "no json at all",
			response: "desculpe, não entendi",
			wantErr:  true,
		},
		{
			name:     "unknown tool",
			response: `{"tool_name": "delete_account", "parameters": {}}`,
			wantErr:  true,
		},
		{
			name:     "search without query",
			response: `{"tool_name": "search_products", "parameters": {"query": "  "}}`,
			wantErr:  true,
		},
		{
			name:     "malformed json",
			response: `{"tool_name": "view_cart", "parameters": `,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, err := ParseToolCall(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", call)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseToolCall() error = %v", err)
			}
			if call.ToolName != tt.wantTool {
				t.Errorf("tool = %q, want %q", call.ToolName, tt.wantTool)
			}
		})
	}
}

func TestHeuristic(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantTool   string
		wantQuery  string
		wantOffers bool
	}{
		{
			name:      "search with verb stripped",
			message:   "buscar café 500ml",
			wantTool:  "search_products",
			wantQuery: "café 500ml",
		},
		{
			name:      "plain product name",
			message:   "nescau",
			wantTool:  "search_products",
			wantQuery: "nescau",
		},
		{
			name:       "offers keyword",
			message:    "tem refrigerante em oferta",
			wantTool:   "search_products",
			wantQuery:  "refrigerante em oferta",
			wantOffers: true,
		},
		{
			name:     "cart",
			message:  "quero ver meu carrinho",
			wantTool: "view_cart",
		},
		{
			name:     "greeting",
			message:  "bom dia",
			wantTool: "small_talk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := Heuristic(tt.message)
			if call.ToolName != tt.wantTool {
				t.Fatalf("tool = %q, want %q", call.ToolName, tt.wantTool)
			}
			if tt.wantQuery != "" && call.Query() != tt.wantQuery {
				t.Errorf("query = %q, want %q", call.Query(), tt.wantQuery)
			}
			if call.OffersOnly() != tt.wantOffers {
				t.Errorf("offersOnly = %v, want %v", call.OffersOnly(), tt.wantOffers)
			}
		})
	}
}
