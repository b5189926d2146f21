package kafka

import (
	"context"
	"log/slog"

	"github.com/toybox/storefront/internal/core/domain"
	"github.com/toybox/storefront/internal/core/port"
	"github.com/toybox/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ClientEventsProducer = (*ClientEventsProducer)(nil)

// A ClientEventsProducer publishes shopper activity to the client
// events topic. Delivery is asynchronous: the storefront never waits
// for broker acknowledgement, failures are logged by the promise.
type ClientEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewClientEventsProducer(opts ...ProducerOpt) (ClientEventsProducer, error) {
	const op = "NewClientEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ClientEventsProducer{}, opErr(err, op)
		}
	}
	return ClientEventsProducer{options.cl, options.encoder}, nil
}

func (p ClientEventsProducer) Close() {
	const op = "ClientEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ClientEventsProducer) ProduceEvent(
	ctx context.Context, evt domain.ClientEvent,
) error {
	const op = "ClientEventsProducer.ProduceEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	s := p.toSchema(evt)
	v, err := p.encoder.Encode(s)
	if err != nil {
		return opErr(err, op)
	}

	r := &kgo.Record{Key: []byte(s.ProductName), Value: v}
	p.cl.Produce(ctx, r, func(_ *kgo.Record, err error) {
		if err != nil {
			slog.Error("failed to deliver client event",
				"op", op, "kind", s.Kind, "err", err)
		}
	})
	return nil
}

func (ClientEventsProducer) toSchema(evt domain.ClientEvent) (s schema.ClientEventV1) {
	s.EventID = evt.EventID
	s.SessionID = evt.SessionID
	s.Kind = string(evt.Kind)
	s.ProductID = int64(evt.ProductID)
	s.ProductName = evt.ProductName
	s.At = evt.At.UnixMilli()
	return s
}
