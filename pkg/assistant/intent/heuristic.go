package intent

import (
	"strings"

	"shop-assistant-be/internal/constant"
)

var greetings = []string{"oi", "olá", "ola", "bom dia", "boa tarde", "boa noite", "obrigado", "obrigada", "valeu"}

var cartPhrases = []string{"carrinho", "meu pedido", "minha compra"}

var offerPhrases = []string{"oferta", "ofertas", "promoção", "promocao", "promoções", "promocoes", "desconto"}

// Heuristic is the deterministic keyword classifier used when the LLM
// path is unavailable or returns an invalid structure.
func Heuristic(message string) *ToolCall {
	text := strings.ToLower(strings.TrimSpace(message))

	for _, p := range cartPhrases {
		if strings.Contains(text, p) {
			return &ToolCall{ToolName: constant.ToolViewCart, Parameters: map[string]interface{}{}}
		}
	}

	for _, g := range greetings {
		if text == g {
			return &ToolCall{
				ToolName:   constant.ToolSmallTalk,
				Parameters: map[string]interface{}{"reply": "Olá! Posso buscar produtos ou mostrar seu carrinho."},
			}
		}
	}

	offersOnly := false
	for _, p := range offerPhrases {
		if strings.Contains(text, p) {
			offersOnly = true
			break
		}
	}

	// Everything else reads as a product search with the command verb
	// stripped from the front.
	query := text
	for _, verb := range constant.SearchVerbs {
		if strings.HasPrefix(query, verb+" ") {
			query = strings.TrimSpace(strings.TrimPrefix(query, verb+" "))
			break
		}
	}
	return &ToolCall{
		ToolName: constant.ToolSearchProducts,
		Parameters: map[string]interface{}{
			"query":       query,
			"offers_only": offersOnly,
			"sort":        constant.SortRelevance,
		},
	}
}
