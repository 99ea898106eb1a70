// Package cart holds the in-memory redemption selection a user builds before booking.
// Cart does no I/O. The balance it checks against is the one seen when it was opened.
package cart

import (
	"slices"

	catalogModel "nightlife/internal/domains/catalog/model"
	ledgerModel "nightlife/internal/domains/ledger/model"
)

var (
	ErrUnknownItem         = catalogModel.ErrUnknownItem
	ErrInsufficientBalance = ledgerModel.ErrInsufficientBalance
)

type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
}

type Line struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

func (l Line) Amount() int64 {
	return int64(l.Quantity) * l.UnitPrice
}

// Snapshot is the serialisable form of a Cart.
type Snapshot struct {
	Balance   int64           `json:"balance"`
	PriceList map[string]Item `json:"price_list"`
	Lines     []Line          `json:"lines"`
}

type Cart struct {
	balance   int64
	priceList map[string]Item
	lines     []Line
}

func New(balance int64, priceList map[string]Item) *Cart {
	return &Cart{
		balance:   balance,
		priceList: priceList,
	}
}

func Restore(snapshot Snapshot) *Cart {
	return &Cart{
		balance:   snapshot.Balance,
		priceList: snapshot.PriceList,
		lines:     slices.Clone(snapshot.Lines),
	}
}

func (c *Cart) Snapshot() Snapshot {
	return Snapshot{
		Balance:   c.balance,
		PriceList: c.priceList,
		Lines:     slices.Clone(c.lines),
	}
}

func (c *Cart) Balance() int64 {
	return c.balance
}

// AddItem adds one unit of itemID. The cart is left untouched when the item is unknown
// or when the new total would exceed the balance.
func (c *Cart) AddItem(itemID string) error {
	item, ok := c.priceList[itemID]
	if !ok {
		return ErrUnknownItem
	}

	if c.Total()+item.UnitPrice > c.balance {
		return ErrInsufficientBalance
	}

	if idx := c.indexOf(itemID); idx >= 0 {
		c.lines[idx].Quantity++

		return nil
	}

	c.lines = append(c.lines, Line{
		ItemID:    item.ID,
		Name:      item.Name,
		Quantity:  1,
		UnitPrice: item.UnitPrice,
	})

	return nil
}

// RemoveItem takes one unit of itemID away, dropping the line at zero.
func (c *Cart) RemoveItem(itemID string) {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return
	}

	c.lines[idx].Quantity--

	if c.lines[idx].Quantity <= 0 {
		c.lines = slices.Delete(c.lines, idx, idx+1)
	}
}

func (c *Cart) Quantity(itemID string) int {
	if idx := c.indexOf(itemID); idx >= 0 {
		return c.lines[idx].Quantity
	}

	return 0
}

func (c *Cart) Total() int64 {
	return TotalOf(c.lines)
}

// Finalize returns a copy of the selection in first-added order, nil when empty.
func (c *Cart) Finalize() []Line {
	if len(c.lines) == 0 {
		return nil
	}

	return slices.Clone(c.lines)
}

func (c *Cart) indexOf(itemID string) int {
	return slices.IndexFunc(c.lines, func(l Line) bool { return l.ItemID == itemID })
}

func TotalOf(lines []Line) int64 {
	var total int64
	for _, line := range lines {
		total += line.Amount()
	}

	return total
}
