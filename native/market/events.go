package market

import (
	"strconv"

	"swapmarket/core/events"
)

const (
	EventTypeSwapCreated   = "market.swap.created"
	EventTypeSwapUpdated   = "market.swap.updated"
	EventTypeSwapCancelled = "market.swap.cancelled"
	EventTypeSwapFinished  = "market.swap.finished"
	EventTypeConfigUpdated = "market.config.updated"
	EventTypeFeesWithdrawn = "market.fees.withdrawn"
)

func newSwapEvent(eventType string, record *SwapRecord) *events.Attributed {
	if record == nil {
		return &events.Attributed{Type: eventType, Attributes: map[string]string{}}
	}
	price := "0"
	if record.Price != nil {
		price = record.Price.String()
	}
	return &events.Attributed{
		Type: eventType,
		Attributes: map[string]string{
			"swapId":       record.ID,
			"creator":      record.Creator,
			"collection":   record.Collection,
			"assetId":      record.AssetID,
			"side":         record.Side.String(),
			"price":        price,
			"paymentToken": record.Payment.String(),
		},
	}
}

func newConfigEvent(cfg Config) *events.Attributed {
	return &events.Attributed{
		Type: EventTypeConfigUpdated,
		Attributes: map[string]string{
			"admin": cfg.Admin,
			"denom": cfg.Denom,
			"fees":  strconv.FormatUint(cfg.FeePercent, 10),
		},
	}
}

func newWithdrawEvent(amount, denom string) *events.Attributed {
	return &events.Attributed{
		Type: EventTypeFeesWithdrawn,
		Attributes: map[string]string{
			"amount": amount,
			"denom":  denom,
		},
	}
}
