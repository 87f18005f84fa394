package access

import (
	"bytes"
	"context"
	"slices"

	"github.com/gaze-network/tokensale/core/event"
	ethcommon "github.com/luxfi/geth/common"
)

// Whitelist is an address set. Add and Remove are idempotent and
// emit one event per address, in input order, whether or not membership changed.
type Whitelist struct {
	members map[ethcommon.Address]struct{}
	emitter event.Emitter
}

// NewWhitelist returns a whitelist seeded with initial. Seeding emits nothing.
func NewWhitelist(emitter event.Emitter, initial ...ethcommon.Address) *Whitelist {
	w := &Whitelist{
		members: make(map[ethcommon.Address]struct{}, len(initial)),
		emitter: emitter,
	}
	for _, addr := range initial {
		w.members[addr] = struct{}{}
	}
	return w
}

func (w *Whitelist) Contains(addr ethcommon.Address) bool {
	_, ok := w.members[addr]
	return ok
}

func (w *Whitelist) Len() int {
	return len(w.members)
}

func (w *Whitelist) Add(ctx context.Context, addrs ...ethcommon.Address) {
	for _, addr := range addrs {
		w.members[addr] = struct{}{}
		w.emitter.Emit(ctx, WhitelistAdded{Address: addr})
	}
}

func (w *Whitelist) Remove(ctx context.Context, addrs ...ethcommon.Address) {
	for _, addr := range addrs {
		delete(w.members, addr)
		w.emitter.Emit(ctx, WhitelistRemoved{Address: addr})
	}
}

// Members returns the whitelisted addresses in byte order.
func (w *Whitelist) Members() []ethcommon.Address {
	out := make([]ethcommon.Address, 0, len(w.members))
	for addr := range w.members {
		out = append(out, addr)
	}
	slices.SortFunc(out, func(a, b ethcommon.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return out
}
