package ens

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// TIMEOUT bounds every single endpoint call.
const TIMEOUT time.Duration = 4 * time.Second

// Endpoint is one read-only Ethereum endpoint the resolver can query.
// Implementations must be safe for concurrent use.
type Endpoint interface {
	Name() string
	// Call executes a read-only contract call against to with calldata data
	// at the latest block.
	Call(ctx context.Context, to common.Address, data []byte) ([]byte, error)
}

// nodeEndpoint talks to one JSON-RPC node, dialing lazily on first use so
// that constructing the default endpoint list costs nothing.
type nodeEndpoint struct {
	name string
	url  string

	mu        sync.Mutex
	client    *rpc.Client
	ethClient *ethclient.Client
}

func NewEndpoint(name, url string) Endpoint {
	return &nodeEndpoint{name: name, url: url}
}

func (n *nodeEndpoint) Name() string {
	return n.name
}

func (n *nodeEndpoint) eth() (*ethclient.Client, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.ethClient != nil {
		return n.ethClient, nil
	}
	client, err := rpc.Dial(n.url)
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to %s: %w", n.name, err)
	}
	n.client = client
	n.ethClient = ethclient.NewClient(client)
	return n.ethClient, nil
}

func (n *nodeEndpoint) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	ethcli, err := n.eth()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	return ethcli.CallContract(timeout, ethereum.CallMsg{
		To:   &to,
		Data: data,
	}, nil)
}
