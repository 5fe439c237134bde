package orderbook

import (
	"sort"
	"sync"
	"time"

	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

type level struct {
	price    decimal.Decimal
	entries  []orderbookv1.Entry
	quantity decimal.Decimal
}

func (l *level) index(orderID string) int {
	for i := range l.entries {
		if l.entries[i].OrderID == orderID {
			return i
		}
	}
	return -1
}

func (l *level) snapshot() orderbookv1.Level {
	entries := make([]orderbookv1.Entry, len(l.entries))
	copy(entries, l.entries)
	return orderbookv1.Level{
		Price:    l.price,
		Entries:  entries,
		Quantity: l.quantity,
	}
}

// bookSide keeps the levels of one side sorted best first, plus a price index.
type bookSide struct {
	side    orderv1.Side
	levels  []*level
	byPrice map[string]*level
}

func newBookSide(side orderv1.Side) *bookSide {
	return &bookSide{
		side:    side,
		byPrice: make(map[string]*level),
	}
}

// better reports whether price a has priority over price b on this side.
func (s *bookSide) better(a, b decimal.Decimal) bool {
	if s.side == orderv1.SideBuy {
		return a.GreaterThan(b)
	}
	return a.LessThan(b)
}

func (s *bookSide) get(price decimal.Decimal) *level {
	return s.byPrice[price.String()]
}

func (s *bookSide) getOrCreate(price decimal.Decimal) *level {
	if l := s.get(price); l != nil {
		return l
	}

	l := &level{price: price, quantity: decimal.Zero}
	i := sort.Search(len(s.levels), func(i int) bool {
		return !s.better(s.levels[i].price, price)
	})
	s.levels = append(s.levels, nil)
	copy(s.levels[i+1:], s.levels[i:])
	s.levels[i] = l
	s.byPrice[price.String()] = l
	return l
}

func (s *bookSide) removeLevel(l *level) {
	delete(s.byPrice, l.price.String())
	for i := range s.levels {
		if s.levels[i] == l {
			s.levels = append(s.levels[:i], s.levels[i+1:]...)
			return
		}
	}
}

func (s *bookSide) best() *level {
	if len(s.levels) == 0 {
		return nil
	}
	return s.levels[0]
}

// Book is the live order book of one symbol. It is safe for concurrent use.
type Book struct {
	mu       sync.RWMutex
	symbol   string
	bids     *bookSide
	asks     *bookSide
	orders   map[string]orderv1.Side
	sequence uint64
}

// NewBook creates an empty book.
func NewBook(symbol string) *Book {
	return &Book{
		symbol: symbol,
		bids:   newBookSide(orderv1.SideBuy),
		asks:   newBookSide(orderv1.SideSell),
		orders: make(map[string]orderv1.Side),
	}
}

var _ orderbookv1.Reader = (*Book)(nil)

// Symbol returns the symbol of the book.
func (b *Book) Symbol() string {
	return b.symbol
}

func (b *Book) sideOf(side orderv1.Side) (*bookSide, error) {
	switch side {
	case orderv1.SideBuy:
		return b.bids, nil
	case orderv1.SideSell:
		return b.asks, nil
	}
	return nil, orderbookv1.ErrInvalidSide
}

// Insert appends an entry at the back of its price level and returns it with its sequence.
func (b *Book) Insert(entry orderbookv1.Entry) (orderbookv1.Entry, error) {
	if !entry.Price.IsPositive() {
		return entry, orderbookv1.ErrInvalidPrice
	}
	if !entry.Remaining.IsPositive() {
		return entry, orderbookv1.ErrInvalidQuantity
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	s, err := b.sideOf(entry.Side)
	if err != nil {
		return entry, err
	}
	if _, exists := b.orders[entry.OrderID]; exists {
		return entry, orderbookv1.ErrDuplicateOrder
	}

	b.sequence++
	entry.Sequence = b.sequence

	l := s.getOrCreate(entry.Price)
	l.entries = append(l.entries, entry)
	l.quantity = l.quantity.Add(entry.Remaining)
	b.orders[entry.OrderID] = entry.Side

	return entry, nil
}

// Remove deletes an entry. The level goes away with its last entry.
func (b *Book) Remove(side orderv1.Side, price decimal.Decimal, orderID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, l, i, err := b.locate(side, price, orderID)
	if err != nil {
		return err
	}

	b.removeAt(s, l, i)
	return nil
}

// ReduceQuantity sets the remaining quantity of an entry. Zero removes it.
// The entry keeps its queue position.
func (b *Book) ReduceQuantity(side orderv1.Side, price decimal.Decimal, orderID string, newRemaining decimal.Decimal) error {
	if newRemaining.IsNegative() {
		return orderbookv1.ErrInvalidQuantity
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	s, l, i, err := b.locate(side, price, orderID)
	if err != nil {
		return err
	}

	current := l.entries[i].Remaining
	if newRemaining.GreaterThan(current) {
		return orderbookv1.ErrInvalidQuantity
	}
	if newRemaining.IsZero() {
		b.removeAt(s, l, i)
		return nil
	}

	l.entries[i].Remaining = newRemaining
	l.quantity = l.quantity.Sub(current.Sub(newRemaining))
	return nil
}

func (b *Book) locate(side orderv1.Side, price decimal.Decimal, orderID string) (*bookSide, *level, int, error) {
	s, err := b.sideOf(side)
	if err != nil {
		return nil, nil, 0, err
	}
	l := s.get(price)
	if l == nil {
		return nil, nil, 0, orderbookv1.ErrOrderNotFound
	}
	i := l.index(orderID)
	if i < 0 {
		return nil, nil, 0, orderbookv1.ErrOrderNotFound
	}
	return s, l, i, nil
}

func (b *Book) removeAt(s *bookSide, l *level, i int) {
	l.quantity = l.quantity.Sub(l.entries[i].Remaining)
	delete(b.orders, l.entries[i].OrderID)
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	if len(l.entries) == 0 {
		s.removeLevel(l)
	}
}

// Contains reports whether the order rests on the book.
func (b *Book) Contains(orderID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.orders[orderID]
	return ok
}

// Len returns the number of resting entries.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.orders)
}

// BestPrice returns the best price of a side.
func (b *Book) BestPrice(side orderv1.Side) (decimal.Decimal, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s, err := b.sideOf(side)
	if err != nil {
		return decimal.Zero, false
	}
	l := s.best()
	if l == nil {
		return decimal.Zero, false
	}
	return l.price, true
}

// EntriesAt returns the entries of a level in FIFO order.
func (b *Book) EntriesAt(side orderv1.Side, price decimal.Decimal) []orderbookv1.Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s, err := b.sideOf(side)
	if err != nil {
		return nil
	}
	l := s.get(price)
	if l == nil {
		return nil
	}
	return l.snapshot().Entries
}

// Walk visits the levels of a side from the best price outwards until fn returns false.
func (b *Book) Walk(side orderv1.Side, fn func(level orderbookv1.Level) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s, err := b.sideOf(side)
	if err != nil {
		return
	}
	for _, l := range s.levels {
		if !fn(l.snapshot()) {
			return
		}
	}
}

// Depth returns up to limit aggregated levels per side. A non-positive limit returns every level.
func (b *Book) Depth(limit int) *orderbookv1.Depth {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &orderbookv1.Depth{
		Symbol:    b.symbol,
		Bids:      aggregate(b.bids, limit),
		Asks:      aggregate(b.asks, limit),
		UpdatedAt: time.Now().UTC(),
	}
}

func aggregate(s *bookSide, limit int) []orderbookv1.PriceLevel {
	n := len(s.levels)
	if limit > 0 && limit < n {
		n = limit
	}
	levels := make([]orderbookv1.PriceLevel, n)
	for i := 0; i < n; i++ {
		levels[i] = orderbookv1.PriceLevel{
			Price:    s.levels[i].price,
			Quantity: s.levels[i].quantity,
			Orders:   len(s.levels[i].entries),
		}
	}
	return levels
}

// BestBidAsk returns the top of the book.
func (b *Book) BestBidAsk() orderbookv1.BestBidAsk {
	b.mu.RLock()
	defer b.mu.RUnlock()

	top := orderbookv1.BestBidAsk{
		Symbol:      b.symbol,
		BidQuantity: decimal.Zero,
		AskQuantity: decimal.Zero,
	}
	if l := b.bids.best(); l != nil {
		top.BidPrice = decimal.NewNullDecimal(l.price)
		top.BidQuantity = l.quantity
	}
	if l := b.asks.best(); l != nil {
		top.AskPrice = decimal.NewNullDecimal(l.price)
		top.AskQuantity = l.quantity
	}
	return top
}

// Clear drops every entry. The sequence keeps counting.
func (b *Book) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bids = newBookSide(orderv1.SideBuy)
	b.asks = newBookSide(orderv1.SideSell)
	b.orders = make(map[string]orderv1.Side)
}
