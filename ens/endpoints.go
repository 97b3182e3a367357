package ens

// DefaultEndpoints returns the ordered endpoint list the resolver walks:
// the caller-configured primary node first (when set), then the public
// fallbacks. The order is fixed and exhausted top to bottom.
func DefaultEndpoints(primaryURL string) []Endpoint {
	var eps []Endpoint
	if primaryURL != "" {
		eps = append(eps, NewEndpoint("primary", primaryURL))
	}
	return append(eps,
		NewEndpoint("mainnet-llama", "https://eth.llamarpc.com"),
		NewEndpoint("mainnet-ankr", "https://rpc.ankr.com/eth"),
		NewEndpoint("mainnet-cloudflare", "https://cloudflare-eth.com"),
		NewEndpoint("mainnet-publicnode", "https://ethereum-rpc.publicnode.com"),
	)
}
