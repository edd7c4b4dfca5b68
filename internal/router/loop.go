package router

import (
	"context"
	"time"

	"github.com/ronak4/BGP-Router/internal/telemetry"
	"github.com/ronak4/BGP-Router/pkg/logging"
)

// housekeepingInterval is the periodic metrics/log flush tick, never used
// for frame dispatch, which is demand-driven off the transport's inbound
// channel.
const housekeepingInterval = 100 * time.Millisecond

// Run is the event loop: a single goroutine selecting over the transport's
// inbound channel and a housekeeping ticker. Each inbound frame is
// dispatched and fully handled before the next receive, which is what gives
// the RIB and history log per-message atomicity without any locking. Run
// blocks until ctx is canceled.
func (r *Router) Run(ctx context.Context) {
	ticker := time.NewTicker(housekeepingInterval)
	defer ticker.Stop()

	logging.Infof("router started, asn=%d, neighbors=%d", r.ASN, len(r.Registry.All()))

	for {
		select {
		case <-ctx.Done():
			logging.Info("router stopping")
			return
		case in, ok := <-r.Transport.Inbound():
			if !ok {
				logging.Warn("transport inbound channel closed, stopping router")
				return
			}
			r.Dispatch(in.Data)
		case <-ticker.C:
			r.housekeep()
		}
	}
}

// housekeep does the periodic, non-dispatch work: right now just a metrics
// refresh, since rib_entries can drift from the last Set call if a future
// change mutates the table outside Announce/Withdraw.
func (r *Router) housekeep() {
	telemetry.RIBEntries.Set(float64(r.RIB.Table.Len()))
}
