package response

import (
	"fmt"
	"strings"

	"shop-assistant-be/internal/constant"
	"shop-assistant-be/internal/entity"
)

// Presenter renders the user-facing pt-BR reply for each terminal
// outcome. Every turn produces some reply; silence is never an option.
type Presenter struct{}

func NewPresenter() *Presenter {
	return &Presenter{}
}

func (p *Presenter) SearchResults(outcome *entity.SearchResultsPayload) string {
	var b strings.Builder

	switch outcome.Status {
	case constant.SearchStatusFallback:
		b.WriteString("Não encontrei na embalagem pedida, mas achei estas opções:\n")
	case constant.SearchStatusTrigram:
		b.WriteString("Você quis dizer? Encontrei estes produtos parecidos:\n")
	case constant.SearchStatusOffersFound:
		b.WriteString("Ofertas encontradas:\n")
	default:
		b.WriteString("Encontrei estes produtos:\n")
	}

	for _, prod := range outcome.Products {
		b.WriteString(fmt.Sprintf("\n*%s*\n", prod.Description))
		for _, item := range prod.Items {
			line := fmt.Sprintf("  %d - %s x%d: R$ %.2f", item.ItemId, item.Unit, item.PackageQty, item.Price())
			if item.OfferPrice != nil && *item.OfferPrice > 0 {
				line += " (oferta)"
			}
			b.WriteString(line + "\n")
		}
	}
	b.WriteString("\nResponda com o número do item para adicionar ao carrinho.")
	return b.String()
}

func (p *Presenter) NoResults(status string) string {
	if status == constant.SearchStatusNoOffers {
		return "Não encontrei ofertas para essa busca. Quer tentar sem o filtro de ofertas?"
	}
	return "Não encontrei produtos para essa busca. Pode tentar com outras palavras?"
}

func (p *Presenter) AskQuantity(product entity.ContextProduct, item entity.ContextItem) string {
	return fmt.Sprintf("Quantas unidades de *%s* (%s, R$ %.2f)?", product.Description, item.Unit, item.Price())
}

func (p *Presenter) ItemAdded(product entity.ContextProduct, item entity.ContextItem, quantity int) string {
	total := float64(quantity) * item.Price()
	return fmt.Sprintf("Adicionei %dx *%s* ao carrinho. Subtotal: R$ %.2f", quantity, product.Description, total)
}

func (p *Presenter) Cancelled() string {
	return "Tudo bem, cancelei a seleção. Posso buscar outra coisa?"
}

func (p *Presenter) ReferenceNotFound(reference string) string {
	return fmt.Sprintf("Não encontrei o item %s na última busca. Responda com um dos números listados ou faça uma nova busca.", reference)
}

func (p *Presenter) InvalidQuantity() string {
	return "Não entendi a quantidade. Responda com um número, por exemplo: 2"
}

func (p *Presenter) PriceUnavailable() string {
	return "Esse item está sem preço disponível no momento, então não consegui adicionar. Quer escolher outro?"
}

func (p *Presenter) Cart(cart *entity.Cart) string {
	if cart == nil || len(cart.Items) == 0 {
		return "Seu carrinho está vazio."
	}
	var b strings.Builder
	b.WriteString("Seu carrinho:\n")
	for _, item := range cart.Items {
		name := item.Description
		if name == "" {
			name = fmt.Sprintf("item %d", item.ItemId)
		}
		b.WriteString(fmt.Sprintf("  %dx %s: R$ %.2f\n", item.Quantity, name, item.Subtotal))
	}
	b.WriteString(fmt.Sprintf("Total: R$ %.2f", cart.Total))
	return b.String()
}
