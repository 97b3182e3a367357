package ens

import (
	"encoding/json"
	"strings"
)

// ResolutionState tells whether an identity record is still being resolved,
// finished, or terminally failed. Failed records are cached like resolved
// ones so a broken resolution is not retried on every repeated lookup.
type ResolutionState uint8

const (
	StatePending ResolutionState = iota
	StateResolved
	StateFailed
)

func (s ResolutionState) String() string {
	switch s {
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "pending"
	}
}

func (s ResolutionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Identity is the resolved bundle of name and profile attributes for one
// address. Empty fields were simply not set on chain. Records are immutable
// once their state is terminal.
type Identity struct {
	Address     string          `json:"address"`
	Name        string          `json:"name,omitempty"`
	Avatar      string          `json:"avatar,omitempty"`
	Description string          `json:"description,omitempty"`
	Email       string          `json:"email,omitempty"`
	Website     string          `json:"website,omitempty"`
	Twitter     string          `json:"twitter,omitempty"`
	Github      string          `json:"github,omitempty"`
	Discord     string          `json:"discord,omitempty"`
	Telegram    string          `json:"telegram,omitempty"`
	ContentHash string          `json:"contentHash,omitempty"`
	State       ResolutionState `json:"state"`
	Err         string          `json:"error,omitempty"`
}

func pendingIdentity(addr string) *Identity {
	return &Identity{Address: strings.ToLower(addr), State: StatePending}
}

func failedIdentity(addr, msg string) *Identity {
	return &Identity{Address: strings.ToLower(addr), State: StateFailed, Err: msg}
}
