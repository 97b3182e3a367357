package ens

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// profileTextKeys are the text records fetched for a full identity profile.
// com.twitter/vnd.twitter and com.github/vnd.github are historical aliases
// of each other; coalescing prefers the com.* spelling.
var profileTextKeys = []string{
	"avatar",
	"description",
	"email",
	"url",
	"com.twitter",
	"vnd.twitter",
	"com.github",
	"vnd.github",
	"com.discord",
	"org.telegram",
}

// Resolver turns addresses into names and profiles by walking an ordered
// list of independent endpoints. A transport error on one endpoint is
// captured and the next endpoint is tried; "no name bound" is a valid
// negative outcome, distinct from "every endpoint is down".
type Resolver struct {
	endpoints []Endpoint
	log       *slog.Logger
}

func NewResolver(endpoints []Endpoint, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{endpoints: endpoints, log: log}
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

// Name resolves the reverse record of addr. It returns ("", nil) when no
// endpoint knows a binding and an error joining every per-endpoint failure
// only when all of them failed.
func (r *Resolver) Name(ctx context.Context, addr string) (string, error) {
	node := ReverseNode(addr)
	errs := []error{}
	for _, ep := range r.endpoints {
		name, err := r.nameOn(ctx, ep, node)
		if err != nil {
			r.log.Debug("reverse lookup failed", "endpoint", ep.Name(), "address", addr, "err", err)
			errs = append(errs, wrapError(err, ep.Name()))
			continue
		}
		if name != "" {
			return name, nil
		}
	}
	if len(errs) > 0 && len(errs) == len(r.endpoints) {
		return "", fmt.Errorf("couldn't resolve from any endpoint: %w", errors.Join(errs...))
	}
	return "", nil
}

// Address resolves a name forward to its address, with the same fallback
// discipline as Name. The returned address is lowercase hex, "" when the
// name has no addr record.
func (r *Resolver) Address(ctx context.Context, name string) (string, error) {
	node := Namehash(name)
	errs := []error{}
	for _, ep := range r.endpoints {
		addr, err := r.addrOn(ctx, ep, node)
		if err != nil {
			r.log.Debug("forward lookup failed", "endpoint", ep.Name(), "name", name, "err", err)
			errs = append(errs, wrapError(err, ep.Name()))
			continue
		}
		if addr != "" {
			return addr, nil
		}
	}
	if len(errs) > 0 && len(errs) == len(r.endpoints) {
		return "", fmt.Errorf("couldn't resolve from any endpoint: %w", errors.Join(errs...))
	}
	return "", nil
}

// Profile assembles the full identity record for addr: the reverse name
// plus the profile text records of that name. Field lookups within one
// endpoint run concurrently and fail independently; an endpoint that yields
// zero non-empty fields is abandoned for the next one.
func (r *Resolver) Profile(ctx context.Context, addr string) (*Identity, error) {
	name, err := r.Name(ctx, addr)
	if err != nil {
		return nil, err
	}
	id := &Identity{Address: strings.ToLower(addr), Name: name, State: StateResolved}
	if name == "" {
		return id, nil
	}

	node := Namehash(name)
	for _, ep := range r.endpoints {
		fields, err := r.profileFieldsOn(ctx, ep, node)
		if err != nil {
			r.log.Debug("profile lookup failed", "endpoint", ep.Name(), "name", name, "err", err)
			continue
		}
		if len(fields) == 0 {
			continue
		}
		applyFields(id, fields)
		break
	}
	return id, nil
}

type fieldResult struct {
	Key   string
	Value string
	Error error
}

// profileFieldsOn fetches all profile records of node from one endpoint,
// one goroutine per field. The shared context cancels in-flight sibling
// lookups as soon as the caller gives up on this endpoint.
func (r *Resolver) profileFieldsOn(ctx context.Context, ep Endpoint, node common.Hash) (map[string]string, error) {
	resolver, err := r.resolverOn(ctx, ep, node)
	if err != nil {
		return nil, err
	}
	if resolver == (common.Address{}) {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resCh := make(chan fieldResult, len(profileTextKeys)+1)
	for i := range profileTextKeys {
		key := profileTextKeys[i]
		go func() {
			value, err := r.textOn(ctx, ep, resolver, node, key)
			resCh <- fieldResult{Key: key, Value: value, Error: err}
		}()
	}
	go func() {
		value, err := r.contenthashOn(ctx, ep, resolver, node)
		resCh <- fieldResult{Key: "contenthash", Value: value, Error: err}
	}()

	fields := map[string]string{}
	for i := 0; i < len(profileTextKeys)+1; i++ {
		res := <-resCh
		if res.Error != nil {
			r.log.Debug("profile field lookup failed", "endpoint", ep.Name(), "key", res.Key, "err", res.Error)
			continue
		}
		if res.Value != "" {
			fields[res.Key] = res.Value
		}
	}
	return fields, nil
}

func applyFields(id *Identity, fields map[string]string) {
	id.Avatar = fields["avatar"]
	id.Description = fields["description"]
	id.Email = fields["email"]
	id.Website = fields["url"]
	id.Twitter = coalesce(fields["com.twitter"], fields["vnd.twitter"])
	id.Github = coalesce(fields["com.github"], fields["vnd.github"])
	id.Discord = fields["com.discord"]
	id.Telegram = fields["org.telegram"]
	id.ContentHash = fields["contenthash"]
}

func coalesce(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}

// resolverOn asks the registry which resolver contract serves node.
// The zero address means no resolver is set.
func (r *Resolver) resolverOn(ctx context.Context, ep Endpoint, node common.Hash) (common.Address, error) {
	data, err := registryABI.Pack("resolver", node)
	if err != nil {
		return common.Address{}, err
	}
	out, err := ep.Call(ctx, registryAddress, data)
	if err != nil {
		return common.Address{}, err
	}
	var addr common.Address
	if err := registryABI.UnpackIntoInterface(&addr, "resolver", out); err != nil {
		return common.Address{}, err
	}
	return addr, nil
}

func (r *Resolver) nameOn(ctx context.Context, ep Endpoint, node common.Hash) (string, error) {
	resolver, err := r.resolverOn(ctx, ep, node)
	if err != nil {
		return "", err
	}
	if resolver == (common.Address{}) {
		return "", nil
	}
	data, err := resolverABI.Pack("name", node)
	if err != nil {
		return "", err
	}
	out, err := ep.Call(ctx, resolver, data)
	if err != nil {
		return "", err
	}
	var name string
	if err := resolverABI.UnpackIntoInterface(&name, "name", out); err != nil {
		return "", err
	}
	return name, nil
}

func (r *Resolver) addrOn(ctx context.Context, ep Endpoint, node common.Hash) (string, error) {
	resolver, err := r.resolverOn(ctx, ep, node)
	if err != nil {
		return "", err
	}
	if resolver == (common.Address{}) {
		return "", nil
	}
	data, err := resolverABI.Pack("addr", node)
	if err != nil {
		return "", err
	}
	out, err := ep.Call(ctx, resolver, data)
	if err != nil {
		return "", err
	}
	var addr common.Address
	if err := resolverABI.UnpackIntoInterface(&addr, "addr", out); err != nil {
		return "", err
	}
	if addr == (common.Address{}) {
		return "", nil
	}
	return strings.ToLower(addr.Hex()), nil
}

func (r *Resolver) textOn(ctx context.Context, ep Endpoint, resolver common.Address, node common.Hash, key string) (string, error) {
	data, err := resolverABI.Pack("text", node, key)
	if err != nil {
		return "", err
	}
	out, err := ep.Call(ctx, resolver, data)
	if err != nil {
		return "", err
	}
	var value string
	if err := resolverABI.UnpackIntoInterface(&value, "text", out); err != nil {
		return "", err
	}
	return value, nil
}

func (r *Resolver) contenthashOn(ctx context.Context, ep Endpoint, resolver common.Address, node common.Hash) (string, error) {
	data, err := resolverABI.Pack("contenthash", node)
	if err != nil {
		return "", err
	}
	out, err := ep.Call(ctx, resolver, data)
	if err != nil {
		return "", err
	}
	var raw []byte
	if err := resolverABI.UnpackIntoInterface(&raw, "contenthash", out); err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", nil
	}
	return "0x" + hex.EncodeToString(raw), nil
}
