package market

import "math/big"

// Default and max page sizes for paginated queries.
const (
	DefaultLimit uint32 = 10
	MaxLimit     uint32 = 100
)

// PageParams are the derived slice bounds for one page of a filtered result
// vector. They are computed per query and never persisted.
type PageParams struct {
	Start int
	End   int
	Page  uint32
	Total uint64
}

// PageResult is one page of swaps plus the verbatim total, which callers use
// to compute further pages.
type PageResult struct {
	Swaps []*SwapRecord
	Page  uint32
	Total uint64
}

// CalculatePageParams derives the effective limit and slice offsets for the
// requested page. A zero limit selects the default. The limit collapses to
// the total when fewer results exist, otherwise it clamps into
// [DefaultLimit, MaxLimit]; the final page may be shorter when the total does
// not divide evenly.
func CalculatePageParams(page, limit, total uint32) PageParams {
	if limit == 0 {
		limit = DefaultLimit
	}
	if total < limit {
		limit = total
	} else if limit < DefaultLimit {
		limit = DefaultLimit
	} else if limit > MaxLimit {
		limit = MaxLimit
	}
	var modulo uint32
	if total > 0 {
		modulo = total % limit
	}
	var lastPage uint32
	switch {
	case total == 0:
		lastPage = 0
	case modulo > 0:
		lastPage = total / limit
	default:
		lastPage = total/limit - 1
	}
	pageSize := limit
	if page == lastPage && modulo != 0 {
		pageSize = modulo
	}
	start := int(page) * int(limit)
	return PageParams{
		Start: start,
		End:   start + int(pageSize),
		Page:  page,
		Total: uint64(total),
	}
}

func paginate(results []*SwapRecord, page, limit uint32) PageResult {
	params := CalculatePageParams(page, limit, uint32(len(results)))
	swaps := []*SwapRecord{}
	if params.Start < len(results) && params.Start < params.End {
		end := params.End
		if end > len(results) {
			end = len(results)
		}
		for _, record := range results[params.Start:end] {
			swaps = append(swaps, record.Clone())
		}
	}
	return PageResult{Swaps: swaps, Page: params.Page, Total: params.Total}
}

func (e *Engine) filtered(pred func(*SwapRecord) bool) ([]*SwapRecord, error) {
	var results []*SwapRecord
	err := e.ledger.Scan(func(_ string, record *SwapRecord) (bool, error) {
		if pred(record) {
			results = append(results, record)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// List enumerates swap ids in ascending order after the exclusive startAfter
// cursor. A zero limit selects the default; the limit caps at MaxLimit.
func (e *Engine) List(startAfter string, limit uint32) ([]string, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return e.ledger.Keys(startAfter, int(limit))
}

// GetTotal counts active swaps, optionally restricted to one side.
func (e *Engine) GetTotal(side *Side) (uint64, error) {
	var total uint64
	err := e.ledger.Scan(func(_ string, record *SwapRecord) (bool, error) {
		if side == nil || record.Side == *side {
			total++
		}
		return true, nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// GetOffers pages through all buyer-initiated swaps.
func (e *Engine) GetOffers(page, limit uint32) (PageResult, error) {
	results, err := e.filtered(func(record *SwapRecord) bool {
		return record.Side == SideOffer
	})
	if err != nil {
		return PageResult{}, err
	}
	return paginate(results, page, limit), nil
}

// GetListings pages through all seller-initiated swaps.
func (e *Engine) GetListings(page, limit uint32) (PageResult, error) {
	results, err := e.filtered(func(record *SwapRecord) bool {
		return record.Side == SideSale
	})
	if err != nil {
		return PageResult{}, err
	}
	return paginate(results, page, limit), nil
}

// ListingsOfToken pages through the swaps referencing one asset, optionally
// restricted to one side.
func (e *Engine) ListingsOfToken(assetID, collection string, side *Side, page, limit uint32) (PageResult, error) {
	results, err := e.filtered(func(record *SwapRecord) bool {
		if record.AssetID != assetID || record.Collection != collection {
			return false
		}
		return side == nil || record.Side == *side
	})
	if err != nil {
		return PageResult{}, err
	}
	return paginate(results, page, limit), nil
}

// SwapsOf pages through the swaps created by one account. The side defaults
// to Sale when unspecified; an optional collection narrows the scope.
func (e *Engine) SwapsOf(address string, side *Side, collection string, page, limit uint32) (PageResult, error) {
	wanted := sideOrSale(side)
	results, err := e.filtered(func(record *SwapRecord) bool {
		if record.Creator != address || record.Side != wanted {
			return false
		}
		return collection == "" || record.Collection == collection
	})
	if err != nil {
		return PageResult{}, err
	}
	return paginate(results, page, limit), nil
}

// SwapsByPrice pages through swaps inside an inclusive price range. A nil min
// defaults to zero; a nil max leaves the range unbounded above. The side
// defaults to Sale.
func (e *Engine) SwapsByPrice(min, max *big.Int, side *Side, collection string, page, limit uint32) (PageResult, error) {
	wanted := sideOrSale(side)
	floor := big.NewInt(0)
	if min != nil {
		floor = min
	}
	results, err := e.filtered(func(record *SwapRecord) bool {
		if record.Side != wanted {
			return false
		}
		if record.Price.Cmp(floor) < 0 {
			return false
		}
		if max != nil && record.Price.Cmp(max) > 0 {
			return false
		}
		return collection == "" || record.Collection == collection
	})
	if err != nil {
		return PageResult{}, err
	}
	return paginate(results, page, limit), nil
}

// SwapsByDenom pages through swaps priced in the given payment denomination.
// The side defaults to Sale.
func (e *Engine) SwapsByDenom(denom PaymentDenom, side *Side, collection string, page, limit uint32) (PageResult, error) {
	wanted := sideOrSale(side)
	results, err := e.filtered(func(record *SwapRecord) bool {
		if record.Side != wanted {
			return false
		}
		if denom.IsFungible() {
			if !record.Payment.IsFungible() || record.Payment.Token != denom.Token {
				return false
			}
		} else if record.Payment.IsFungible() {
			return false
		}
		return collection == "" || record.Collection == collection
	})
	if err != nil {
		return PageResult{}, err
	}
	return paginate(results, page, limit), nil
}

// SwapsByPaymentType pages through fungible-priced or native-priced swaps.
// The side defaults to Sale.
func (e *Engine) SwapsByPaymentType(fungible bool, side *Side, collection string, page, limit uint32) (PageResult, error) {
	wanted := sideOrSale(side)
	results, err := e.filtered(func(record *SwapRecord) bool {
		if record.Side != wanted || record.Payment.IsFungible() != fungible {
			return false
		}
		return collection == "" || record.Collection == collection
	})
	if err != nil {
		return PageResult{}, err
	}
	return paginate(results, page, limit), nil
}

// Details returns the stored record for one swap id.
func (e *Engine) Details(id string) (*SwapRecord, error) {
	record, err := e.ledger.Get(id)
	if err != nil {
		return nil, err
	}
	return record.Clone(), nil
}

func sideOrSale(side *Side) Side {
	if side == nil {
		return SideSale
	}
	return *side
}
