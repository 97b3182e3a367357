package ens

import (
	"context"
	"log/slog"
	"strings"
)

// Sink receives successfully resolved identities, e.g. to feed a search
// index. Sink failures are logged and never fail a resolution.
type Sink interface {
	Put(id *Identity) error
}

// Directory is the cache-fronted face of the resolver. It always answers
// with an identity record: transport problems become terminal failed
// records instead of errors, so consumers (the payload enhancer above all)
// never have to handle resolution infrastructure being down.
type Directory struct {
	resolver *Resolver
	cache    *Cache
	sink     Sink
	log      *slog.Logger
}

func NewDirectory(resolver *Resolver, cache *Cache, log *slog.Logger) *Directory {
	if log == nil {
		log = slog.Default()
	}
	return &Directory{resolver: resolver, cache: cache, log: log}
}

// SetSink attaches a sink that gets every newly resolved named profile.
func (d *Directory) SetSink(s Sink) {
	d.sink = s
}

// Identity returns the record for addr, resolving on a cache miss. With
// full set, the whole profile is assembled; otherwise only the name.
func (d *Directory) Identity(ctx context.Context, addr string, full bool) *Identity {
	lower := strings.ToLower(addr)
	if full {
		return d.profileOf(ctx, lower)
	}
	return d.nameOf(ctx, lower)
}

func (d *Directory) nameOf(ctx context.Context, addr string) *Identity {
	if out, cached := d.cache.BeginName(addr); cached {
		return &Identity{Address: addr, Name: out.Name, State: out.State}
	}
	name, err := d.resolver.Name(ctx, addr)
	state := StateResolved
	if err != nil {
		d.log.Debug("name resolution unavailable", "address", addr, "err", err)
		state = StateFailed
	}
	d.cache.PutName(addr, name, state)
	id := &Identity{Address: addr, Name: name, State: state}
	if state == StateFailed {
		id.Err = "resolution unavailable"
	}
	return id
}

func (d *Directory) profileOf(ctx context.Context, addr string) *Identity {
	if id, cached := d.cache.BeginProfile(addr); cached {
		return id
	}
	id, err := d.resolver.Profile(ctx, addr)
	if err != nil {
		d.log.Debug("profile resolution unavailable", "address", addr, "err", err)
		id = failedIdentity(addr, "resolution unavailable")
	}
	d.cache.PutProfile(addr, id)
	d.cache.PutName(addr, id.Name, id.State)
	if d.sink != nil && id.State == StateResolved && id.Name != "" {
		if err := d.sink.Put(id); err != nil {
			d.log.Debug("identity sink rejected record", "address", addr, "err", err)
		}
	}
	return id
}

// Address forward-resolves an ENS name. Forward lookups are rare and not
// memoized.
func (d *Directory) Address(ctx context.Context, name string) (string, error) {
	return d.resolver.Address(ctx, name)
}

type batchOutcome struct {
	Addr string
	ID   *Identity
}

// Many resolves all addresses concurrently and returns exactly one outcome
// per requested address, keyed by lowercase form. A failing address yields
// its own failed record and never aborts the batch. No ordering guarantee.
func (d *Directory) Many(ctx context.Context, addrs []string, full bool) map[string]*Identity {
	resCh := make(chan batchOutcome, len(addrs))
	for i := range addrs {
		addr := addrs[i]
		go func() {
			resCh <- batchOutcome{
				Addr: strings.ToLower(addr),
				ID:   d.Identity(ctx, addr, full),
			}
		}()
	}
	result := map[string]*Identity{}
	for i := 0; i < len(addrs); i++ {
		out := <-resCh
		result[out.Addr] = out.ID
	}
	return result
}

// Flush clears the cache. The next lookup for any address hits the network
// again.
func (d *Directory) Flush() {
	d.cache.Flush()
}
