package store

import (
	"context"
	"slices"

	"github.com/utafrali/storefront/internal/domain"
)

// Cart is the line-item half of a Store.
type Cart struct {
	s *Store
}

// AddItem adds quantity units of product. A line for the same
// (product, variant) pair grows; otherwise a new selected line is appended.
// Non-positive quantities count as 1.
func (c *Cart) AddItem(ctx context.Context, product domain.ProductSummary, quantity int, variantID string) {
	if quantity <= 0 {
		quantity = 1
	}
	c.s.mutate(ctx, OpCartAdd, func() {
		c.s.addLocked(product, quantity, variantID)
	})
}

// TryAddItem is AddItem bounded by the store's Limits. The check and the
// change happen under one lock, so concurrent callers cannot overshoot.
func (c *Cart) TryAddItem(ctx context.Context, product domain.ProductSummary, quantity int, variantID string) error {
	if quantity <= 0 {
		quantity = 1
	}
	return c.s.mutateChecked(ctx, OpCartAdd, func() error {
		lim := c.s.limits
		existing := 0
		if i := domain.FindItemIndex(c.s.items, product.ID, variantID); i >= 0 {
			existing = c.s.items[i].Quantity
		} else if lim.MaxLines > 0 && len(c.s.items) >= lim.MaxLines {
			return ErrTooManyLines
		}
		if lim.MaxQuantity > 0 && existing+quantity > lim.MaxQuantity {
			return ErrQuantityTooLarge
		}
		c.s.addLocked(product, quantity, variantID)
		return nil
	})
}

func (s *Store) addLocked(product domain.ProductSummary, quantity int, variantID string) {
	if i := domain.FindItemIndex(s.items, product.ID, variantID); i >= 0 {
		s.items[i].Quantity += quantity
		return
	}
	s.items = append(s.items, domain.LineItem{
		ProductID:  product.ID,
		Product:    product.Snapshot(),
		Quantity:   quantity,
		VariantID:  variantID,
		IsSelected: true,
		AddedAt:    s.now().UTC(),
	})
}

// RemoveItem drops every line for productID.
func (c *Cart) RemoveItem(ctx context.Context, productID string) {
	c.s.mutate(ctx, OpCartRemove, func() {
		c.s.removeLocked(productID)
	})
}

func (s *Store) removeLocked(productID string) {
	s.items = slices.DeleteFunc(s.items, func(li domain.LineItem) bool {
		return li.ProductID == productID
	})
}

// SetQuantity replaces the quantity on every line for productID. Zero or
// less removes them.
func (c *Cart) SetQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		c.s.mutate(ctx, OpCartRemove, func() { c.s.removeLocked(productID) })
		return
	}
	c.s.mutate(ctx, OpCartSetQuantity, func() {
		for i := range c.s.items {
			if c.s.items[i].ProductID == productID {
				c.s.items[i].Quantity = quantity
			}
		}
	})
}

// ToggleSelection flips IsSelected on every line for productID.
func (c *Cart) ToggleSelection(ctx context.Context, productID string) {
	c.s.mutate(ctx, OpCartToggleSelect, func() {
		for i := range c.s.items {
			if c.s.items[i].ProductID == productID {
				c.s.items[i].IsSelected = !c.s.items[i].IsSelected
			}
		}
	})
}

// SetAllSelected forces IsSelected on every line.
func (c *Cart) SetAllSelected(ctx context.Context, selected bool) {
	c.s.mutate(ctx, OpCartSelectAll, func() {
		for i := range c.s.items {
			c.s.items[i].IsSelected = selected
		}
	})
}

func (c *Cart) Clear(ctx context.Context) {
	c.s.mutate(ctx, OpCartClear, func() {
		c.s.items = []domain.LineItem{}
	})
}

// SetPanelOpen sets the cart panel flag. The flag is never persisted and
// does not run hooks.
func (c *Cart) SetPanelOpen(open bool) {
	c.s.read(func() { c.s.panelOpen = open })
}

// TogglePanel flips the cart panel flag and returns the new value.
func (c *Cart) TogglePanel() bool {
	var open bool
	c.s.read(func() {
		c.s.panelOpen = !c.s.panelOpen
		open = c.s.panelOpen
	})
	return open
}

func (c *Cart) PanelOpen() bool {
	var open bool
	c.s.read(func() { open = c.s.panelOpen })
	return open
}

// TotalItemCount sums quantities over all lines.
func (c *Cart) TotalItemCount() int {
	var n int
	c.s.read(func() { n = domain.ItemCount(c.s.items) })
	return n
}

// SelectedItemCount sums quantities over selected lines.
func (c *Cart) SelectedItemCount() int {
	var n int
	c.s.read(func() {
		for _, li := range c.s.items {
			if li.IsSelected {
				n += li.Quantity
			}
		}
	})
	return n
}

// Subtotal is the price of the selected lines in the store currency.
func (c *Cart) Subtotal() domain.Money {
	var m domain.Money
	c.s.read(func() { m = c.s.subtotalLocked() })
	return m
}

func (s *Store) subtotalLocked() domain.Money {
	sum := domain.Zero(s.currency).Amount()
	for _, li := range s.items {
		if li.IsSelected {
			sum = sum.Add(li.LineTotal().Amount())
		}
	}
	// Prices are non-negative, so the sum is too. Line currencies are not
	// compared: the storefront trades in a single currency.
	m, _ := domain.NewMoney(sum, s.currency)
	return m
}

// Total equals Subtotal. Shipping and discounts are not modelled.
func (c *Cart) Total() domain.Money {
	return c.Subtotal()
}

// Contains reports whether any line is for productID.
func (c *Cart) Contains(productID string) bool {
	_, ok := c.Find(productID)
	return ok
}

// Find returns the first line for productID.
func (c *Cart) Find(productID string) (domain.LineItem, bool) {
	var (
		item domain.LineItem
		ok   bool
	)
	c.s.read(func() {
		for _, li := range c.s.items {
			if li.ProductID == productID {
				item, ok = li, true
				return
			}
		}
	})
	return item, ok
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []domain.LineItem {
	var items []domain.LineItem
	c.s.read(func() { items = slices.Clone(c.s.items) })
	return items
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	var n int
	c.s.read(func() { n = len(c.s.items) })
	return n
}

// AllSelected is true when the cart is non-empty and every line is selected.
func (c *Cart) AllSelected() bool {
	var all bool
	c.s.read(func() {
		all = len(c.s.items) > 0 && !slices.ContainsFunc(c.s.items, func(li domain.LineItem) bool {
			return !li.IsSelected
		})
	})
	return all
}

// Summary is a consistent view of the cart and its derived values.
type Summary struct {
	Items             []domain.LineItem
	TotalItemCount    int
	SelectedItemCount int
	Subtotal          domain.Money
	Total             domain.Money
	AllSelected       bool
	PanelOpen         bool
}

// Summary computes every derived value from a single read of the state.
func (c *Cart) Summary() Summary {
	var sum Summary
	c.s.read(func() {
		sum.Items = slices.Clone(c.s.items)
		sum.AllSelected = len(c.s.items) > 0
		for _, li := range c.s.items {
			sum.TotalItemCount += li.Quantity
			if li.IsSelected {
				sum.SelectedItemCount += li.Quantity
			} else {
				sum.AllSelected = false
			}
		}
		sum.Subtotal = c.s.subtotalLocked()
		sum.Total = sum.Subtotal
		sum.PanelOpen = c.s.panelOpen
	})
	return sum
}
