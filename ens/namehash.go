package ens

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Namehash computes the EIP-137 node for a name. Labels are hashed right to
// left onto a zero node; the empty name is the zero node itself. Input is
// lowercased first, so mixed-case spellings of one name hash identically.
func Namehash(name string) common.Hash {
	node := make([]byte, common.HashLength)
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return common.BytesToHash(node)
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		node = crypto.Keccak256(node, crypto.Keccak256([]byte(labels[i])))
	}
	return common.BytesToHash(node)
}

// ReverseNode returns the node of the reverse record for an address, i.e.
// namehash("<40 lowercase hex digits>.addr.reverse").
func ReverseNode(addr string) common.Hash {
	hex := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(addr), "0x"))
	return Namehash(hex + ".addr.reverse")
}
