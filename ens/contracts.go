package ens

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// The ENS registry lives at the same address on mainnet and every testnet.
var registryAddress = common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")

const registryABIJSON = `[
	{"type":"function","name":"resolver","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"}],
	 "outputs":[{"name":"","type":"address"}]}
]`

const resolverABIJSON = `[
	{"type":"function","name":"name","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"}],
	 "outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"addr","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"}],
	 "outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"text","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"},{"name":"key","type":"string"}],
	 "outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"contenthash","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"}],
	 "outputs":[{"name":"","type":"bytes"}]}
]`

var (
	registryABI = mustABI(registryABIJSON)
	resolverABI = mustABI(resolverABIJSON)
)

func mustABI(body string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(body))
	if err != nil {
		panic(err)
	}
	return parsed
}
