package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/lovoo/goka"
	"github.com/toybox/storefront/internal/core/domain"
	"github.com/toybox/storefront/internal/core/port"
	"github.com/toybox/storefront/pkg/schema"
)

var _ port.PopularityProcessor = (*PopularityProcessor)(nil)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor].
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A clientEventCodec used for serde [schema.ClientEventV1].
type clientEventCodec struct {
	serde Serde
}

func newClientEventCodec(s Serde) clientEventCodec {
	return clientEventCodec{s}
}

func (c clientEventCodec) Encode(v any) ([]byte, error) {
	const op = "clientEventCodec.Encode"
	if _, ok := v.(schema.ClientEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c clientEventCodec) Decode(data []byte) (any, error) {
	const op = "clientEventCodec.Decode"
	var s schema.ClientEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A counterValue holds the add-to-cart tally for one product key.
type counterValue int64

type counterCodec struct{}

func (counterCodec) Encode(v any) ([]byte, error) {
	const op = "counterCodec.Encode"
	cv, ok := v.(counterValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return strconv.AppendInt([]byte(nil), int64(cv), 10), nil
}

func (counterCodec) Decode(data []byte) (any, error) {
	const op = "counterCodec.Decode"
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return counterValue(n), nil
}

// A PopularityProcessor tallies added-to-cart events per product name
// from the client events stream into the group table.
type PopularityProcessor struct {
	opPrefix string
	proc     processor
}

func NewPopularityProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	clientEventSerde Serde,
) (*PopularityProcessor, error) {
	const op = "NewPopularityProc"

	var p PopularityProcessor
	p.opPrefix = "PopularityProcessor"

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newClientEventCodec(clientEventSerde),
			p.processFn,
		),
		goka.Persist(counterCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}
	return &p, nil
}

func (p *PopularityProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *PopularityProcessor) Close() {
	p.proc.close()
}

func (p *PopularityProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op))

	event, _ := msg.(schema.ClientEventV1)
	if event.Kind != string(domain.EventAddedToCart) {
		return
	}

	var cnt counterValue
	if v := ctx.Value(); v != nil {
		cnt, _ = v.(counterValue)
	}
	cnt++
	ctx.SetValue(cnt)
	log.Info("tallied add to cart", "productName", event.ProductName, "count", cnt)
}
