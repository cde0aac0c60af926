package exchange

import (
	"fmt"
	"time"

	"github.com/danmuck/ghcbctl/internal/ghcbmsr"
	"github.com/danmuck/ghcbctl/internal/observability"
	"github.com/rs/zerolog/log"
)

// Driver runs MSR protocol exchanges over a Channel.
type Driver struct {
	ch Channel
}

func NewDriver(ch Channel) *Driver {
	observability.RegisterMetrics()
	return &Driver{ch: ch}
}

// RoundTrip runs one raw cycle for req: write its value, exit to the
// hypervisor, read the register back. The returned value is not
// decoded; Do is the decoding entry point.
func (d *Driver) RoundTrip(req ghcbmsr.Request) (uint64, error) {
	if err := d.ch.WriteMSR(req.MSR()); err != nil {
		return 0, fmt.Errorf("exchange: write msr: %w", err)
	}
	if err := d.ch.Exit(); err != nil {
		return 0, fmt.Errorf("exchange: exit: %w", err)
	}
	raw, err := d.ch.ReadMSR()
	if err != nil {
		return 0, fmt.Errorf("exchange: read msr: %w", err)
	}
	return raw, nil
}

// Do runs one full exchange for req and decodes the read-back against
// it. A top-level function because methods cannot introduce type
// parameters.
func Do[R any](d *Driver, req ghcbmsr.RequestFor[R]) (R, error) {
	var zero R
	kind := req.Info().String()
	start := time.Now()

	raw, err := d.RoundTrip(req)
	if err != nil {
		observability.RecordExchange(kind, "channel_error", time.Since(start))
		log.Error().Str("kind", kind).Err(err).Msg("exchange failed")
		return zero, err
	}

	resp, err := req.Response(raw)
	if err != nil {
		observability.RecordExchange(kind, "rejected", time.Since(start))
		log.Error().
			Str("kind", kind).
			Str("raw", fmt.Sprintf("%#016x", raw)).
			Err(err).
			Msg("response rejected")
		return zero, err
	}

	observability.RecordExchange(kind, "ok", time.Since(start))
	log.Debug().
		Str("kind", kind).
		Str("raw", fmt.Sprintf("%#016x", raw)).
		Msg("exchange complete")
	return resp, nil
}
