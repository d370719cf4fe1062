// Package cart implements the client-side cart state machine: local cart
// contents with a running total, an out-of-stock advisory set, a one-shot
// notice, and the auth gate that defers cart actions for anonymous users.
//
// All state changes go through the pure reducer in this file; the
// Coordinator is the single dispatcher and serialization point.
package cart

import "github.com/dkovalev7/scentshop/internal/client/models"

// ActionKind names a gated cart action.
type ActionKind string

const (
	ActionAddToCart ActionKind = "add-to-cart"
	ActionCheckout  ActionKind = "checkout"
)

// OutOfStockNotice is the fixed advisory shown when the server rejects an
// add with a stock conflict.
const OutOfStockNotice = "Cannot add more of this item: not enough in stock"

// AuthGate is the pending-action sub-state. Invariants: Open implies a
// non-empty Kind; a closed gate carries neither kind nor payload.
type AuthGate struct {
	Open    bool
	Kind    ActionKind
	Pending *models.Perfume
}

// State is the cart aggregate. Total is always recomputed from Items and
// never mutated independently.
type State struct {
	Items      []models.CartItem
	Total      float64
	Loading    bool
	Gate       AuthGate
	OutOfStock map[int64]struct{}
	Notice     string
}

func newState() State {
	return State{OutOfStock: map[int64]struct{}{}}
}

// action is the closed set of state transitions. Each arm of reduce is a
// pure function of (previous state, action).
type action interface{ isAction() }

type setLoading struct{ loading bool }
type setItems struct{ items []models.CartItem }
type addItem struct{ perfume models.Perfume }
type undoAddItem struct{ perfumeID int64 }
type removeItem struct{ perfumeID int64 }
type setQuantity struct {
	perfumeID int64
	quantity  int
}
type clearCart struct{}
type openGate struct {
	kind    ActionKind
	perfume *models.Perfume
}
type closeGate struct{}
type markOutOfStock struct{ perfumeID int64 }
type unmarkOutOfStock struct{ perfumeID int64 }
type setNotice struct{ msg string }
type clearNotice struct{}

func (setLoading) isAction()       {}
func (setItems) isAction()         {}
func (addItem) isAction()          {}
func (undoAddItem) isAction()      {}
func (removeItem) isAction()       {}
func (setQuantity) isAction()      {}
func (clearCart) isAction()        {}
func (openGate) isAction()         {}
func (closeGate) isAction()        {}
func (markOutOfStock) isAction()   {}
func (unmarkOutOfStock) isAction() {}
func (setNotice) isAction()        {}
func (clearNotice) isAction()      {}

func sumTotal(items []models.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}

func cloneItems(items []models.CartItem) []models.CartItem {
	return append([]models.CartItem(nil), items...)
}

func cloneSet(set map[int64]struct{}) map[int64]struct{} {
	out := make(map[int64]struct{}, len(set))
	for k := range set {
		out[k] = struct{}{}
	}
	return out
}

// reduce applies one action and returns the next state. It never mutates
// its input: slices and sets are copied on write so snapshots taken by
// readers stay stable.
func reduce(s State, a action) State {
	switch act := a.(type) {

	case setLoading:
		s.Loading = act.loading
		return s

	case setItems:
		s.Items = cloneItems(act.items)
		s.Total = sumTotal(s.Items)
		return s

	case addItem:
		items := cloneItems(s.Items)
		found := false
		for i := range items {
			if items[i].Perfume.ID == act.perfume.ID {
				items[i].Quantity++
				found = true
				break
			}
		}
		if !found {
			items = append(items, models.CartItem{Perfume: act.perfume, Quantity: 1})
		}
		s.Items = items
		s.Total = sumTotal(items)
		return s

	case undoAddItem:
		items := cloneItems(s.Items)
		out := items[:0]
		for _, it := range items {
			if it.Perfume.ID == act.perfumeID {
				it.Quantity--
			}
			if it.Quantity > 0 {
				out = append(out, it)
			}
		}
		s.Items = out
		s.Total = sumTotal(out)
		return s

	case removeItem:
		items := make([]models.CartItem, 0, len(s.Items))
		for _, it := range s.Items {
			if it.Perfume.ID != act.perfumeID {
				items = append(items, it)
			}
		}
		s.Items = items
		s.Total = sumTotal(items)
		return s

	case setQuantity:
		items := make([]models.CartItem, 0, len(s.Items))
		for _, it := range s.Items {
			if it.Perfume.ID == act.perfumeID {
				it.Quantity = act.quantity
			}
			// A line updated to zero is removed, not retained.
			if it.Quantity > 0 {
				items = append(items, it)
			}
		}
		s.Items = items
		s.Total = sumTotal(items)
		return s

	case clearCart:
		s.Items = nil
		s.Total = 0
		s.OutOfStock = map[int64]struct{}{}
		return s

	case openGate:
		s.Gate = AuthGate{Open: true, Kind: act.kind, Pending: act.perfume}
		return s

	case closeGate:
		// Kind and payload are cleared together; the gate never holds a
		// kind without being open.
		s.Gate = AuthGate{}
		return s

	case markOutOfStock:
		if _, ok := s.OutOfStock[act.perfumeID]; ok {
			return s
		}
		set := cloneSet(s.OutOfStock)
		set[act.perfumeID] = struct{}{}
		s.OutOfStock = set
		return s

	case unmarkOutOfStock:
		if _, ok := s.OutOfStock[act.perfumeID]; !ok {
			return s
		}
		set := cloneSet(s.OutOfStock)
		delete(set, act.perfumeID)
		s.OutOfStock = set
		return s

	case setNotice:
		s.Notice = act.msg
		return s

	case clearNotice:
		s.Notice = ""
		return s

	default:
		return s
	}
}
