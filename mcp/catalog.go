package mcp

import "github.com/sahilm/fuzzy"

// knownOperations is the static catalog served when the gateway cannot be
// reached. It is read-only versioned data: keep it in sync with the
// operations the gateway actually exposes, but never mutate it at runtime.
var knownOperations = []Operation{
	{"search_collections", "Search NFT collections by name, category or chain"},
	{"get_collection", "Fetch one collection with stats, floor price and volume"},
	{"get_trending_collections", "List collections trending by volume over a time window"},
	{"search_items", "Search individual NFTs inside or across collections"},
	{"get_item", "Fetch one NFT with traits, ownership and listing data"},
	{"get_listings", "List active listings for a collection or item"},
	{"search_tokens", "Search fungible tokens by symbol or name"},
	{"get_token", "Fetch one token with price, market cap and supply"},
	{"get_token_balances", "List token balances held by a wallet address"},
	{"get_wallet_activity", "List recent marketplace activity for a wallet"},
}

// KnownOperations returns a copy of the static fallback catalog.
func KnownOperations() []Operation {
	ops := make([]Operation, len(knownOperations))
	copy(ops, knownOperations)
	return ops
}

type operationSource []Operation

func (s operationSource) String(i int) string {
	return s[i].Name + " " + s[i].Description
}

func (s operationSource) Len() int { return len(s) }

// SearchOperations filters ops with fuzzy matching over names and
// descriptions, best matches first. An empty query returns ops unchanged.
func SearchOperations(ops []Operation, query string) []Operation {
	if query == "" {
		return ops
	}
	matches := fuzzy.FindFrom(query, operationSource(ops))
	result := make([]Operation, 0, len(matches))
	for _, m := range matches {
		result = append(result, ops[m.Index])
	}
	return result
}
