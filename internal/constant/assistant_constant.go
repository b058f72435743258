package constant

import "time"

// Context types stored in conversation_contexts. The current conversation
// state is inferred from the type of the newest active row.
const (
	ContextTypeSearchResults    = "search_results"
	ContextTypeAwaitingQuantity = "awaiting_quantity"
	ContextTypeItemAdded        = "item_added"
	ContextTypeCancelled        = "cancelled"
)

// Search outcome statuses. The status encodes which tier produced the
// result and whether the query was restricted to offers.
const (
	SearchStatusSuccess     = "success"
	SearchStatusFallback    = "fallback"
	SearchStatusTrigram     = "trigram_success"
	SearchStatusOffersFound = "offers_found"
	SearchStatusNoOffers    = "no_offers"
	SearchStatusNoResults   = "no_results"
)

// Sort preferences accepted by the search executor.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// Intent tool names returned by the classifier.
const (
	ToolSearchProducts = "search_products"
	ToolViewCart       = "view_cart"
	ToolSmallTalk      = "small_talk"
)

// Classifier sources, tagged on every classified turn so the heuristic
// path is distinguishable from the LLM path in logs.
const (
	ClassifierSourceLLM       = "llm"
	ClassifierSourceHeuristic = "heuristic"
)

const (
	// ContextRetentionDefault is how many rows are kept per
	// (session, context type) after every insert.
	ContextRetentionDefault = 5

	// ContextTTLDefault bounds conversation lifetime: rows older than
	// this are treated as absent on read.
	ContextTTLDefault = 30 * time.Minute

	// TrigramThresholdDefault is the minimum similarity score for the
	// last-resort fuzzy tier.
	TrigramThresholdDefault = 0.2

	// SearchLimitDefault caps products returned per tier.
	SearchLimitDefault = 10
)

// SearchVerbs are folded to a single canonical verb when hashing a query
// for context dedup ("quero nescau" and "buscar nescau" collapse).
var SearchVerbs = []string{"buscar", "quero", "procurar", "encontrar", "tem"}

// StopWords are dropped from the normalized query before hashing.
var StopWords = []string{"o", "a", "os", "as", "um", "uma", "de", "da", "do", "para", "por"}

// CancelPhrases end a pending selection without touching the cart.
var CancelPhrases = []string{"cancelar", "cancela", "esquece", "deixa", "nao quero", "não quero", "voltar"}

// VolumeSuffixes are the unit suffixes recognized by the volume extractor.
var VolumeSuffixes = []string{"ml", "l", "g", "kg"}
