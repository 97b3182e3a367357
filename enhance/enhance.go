package enhance

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/tranvictor/seer/ens"
)

const (
	resolvedKey = "_resolvedAddresses"
	countKey    = "_addressCount"
)

// Directory is the resolution service the enhancer leans on. Satisfied by
// *ens.Directory.
type Directory interface {
	Many(ctx context.Context, addrs []string, full bool) map[string]*ens.Identity
}

// Enhancer decorates operation payloads with resolved identities for every
// address found inside them. It never fails the payload it is given: when
// anything goes wrong the original comes back untouched.
type Enhancer struct {
	dir Directory
	log *slog.Logger
}

func NewEnhancer(dir Directory, log *slog.Logger) *Enhancer {
	if log == nil {
		log = slog.Default()
	}
	return &Enhancer{dir: dir, log: log}
}

// Enhance returns payload with two additive fields, a map from lowercased
// address to its identity and a count of distinct addresses found. A payload
// without addresses is returned as is, no keys added. Non-object roots are
// wrapped under a "data" key so the additive fields have somewhere to live.
// The input is never mutated, siblings are shared via shallow copy.
func (e *Enhancer) Enhance(ctx context.Context, payload interface{}, full bool) interface{} {
	addrs := ExtractAddresses(payload)
	if len(addrs) == 0 {
		return payload
	}
	identities := e.dir.Many(ctx, addrs, full)
	resolved := map[string]interface{}{}
	for addr, id := range identities {
		if full {
			resolved[addr] = id
		} else {
			resolved[addr] = map[string]interface{}{
				"name":   nullable(id.Name),
				"avatar": nullable(id.Avatar),
			}
		}
	}

	var out map[string]interface{}
	if root, ok := payload.(map[string]interface{}); ok {
		out = make(map[string]interface{}, len(root)+2)
		for k, v := range root {
			out[k] = v
		}
	} else {
		out = map[string]interface{}{"data": payload}
	}
	out[resolvedKey] = resolved
	out[countKey] = len(addrs)
	return out
}

// EnhanceJSON is Enhance over raw JSON bytes. Undecodable or unencodable
// payloads are passed through unchanged.
func (e *Enhancer) EnhanceJSON(ctx context.Context, raw []byte, full bool) []byte {
	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		e.log.Debug("payload is not json, skipping enhancement", "err", err)
		return raw
	}
	enhanced, err := json.Marshal(e.Enhance(ctx, payload, full))
	if err != nil {
		e.log.Debug("enhanced payload failed to encode", "err", err)
		return raw
	}
	return enhanced
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
