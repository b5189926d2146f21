package kafka

import (
	"context"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/toybox/storefront/internal/core/port"
)

var _ port.PopularityReader = (*PopularityView)(nil)

// A PopularityViewConfig used for setup [PopularityView].
//
// All fields are required.
type PopularityViewConfig struct {
	SeedBrokers []string
	GroupTable  string
}

// A PopularityView is the read side of the popularity group table.
type PopularityView struct {
	gv *goka.View
}

func NewPopularityView(config PopularityViewConfig) (PopularityView, error) {
	const op = "NewPopularityView"

	gv, err := goka.NewView(
		config.SeedBrokers,
		goka.GroupTable(goka.Group(config.GroupTable)),
		counterCodec{},
	)
	if err != nil {
		return PopularityView{}, opErr(err, op)
	}

	return PopularityView{gv}, nil
}

func (v PopularityView) Run(ctx context.Context) {
	const op = "PopularityView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// Popularity reports the add-to-cart tally for a product name.
func (v PopularityView) Popularity(productName string) (int64, bool) {
	const op = "PopularityView.Popularity"
	log := slog.With("op", op)

	val, err := v.gv.Get(productName)
	if err != nil {
		log.Error("failed to get view data", "err", err)
		return 0, false
	}
	if val == nil {
		return 0, false
	}

	cnt, ok := val.(counterValue)
	if !ok {
		log.Error("unexpected type of data", "productName", productName)
		return 0, false
	}
	return int64(cnt), true
}
