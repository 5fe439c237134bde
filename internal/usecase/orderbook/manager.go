package orderbook

import (
	"sort"
	"sync"

	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// Manager addresses one Book per symbol. Books never share a lock.
type Manager struct {
	mu    sync.RWMutex
	books map[string]*Book
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		books: make(map[string]*Book),
	}
}

// Open returns the book of symbol, creating it when needed.
func (m *Manager) Open(symbol string) *Book {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.books[symbol]
	if !ok {
		b = NewBook(symbol)
		m.books[symbol] = b
	}
	return b
}

// Book returns the book of symbol.
func (m *Manager) Book(symbol string) (*Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.books[symbol]
	if !ok {
		return nil, orderbookv1.ErrUnknownSymbol
	}
	return b, nil
}

// Symbols returns the symbols with a book, sorted.
func (m *Manager) Symbols() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	symbols := make([]string, 0, len(m.books))
	for s := range m.books {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Insert adds an entry to the book of symbol.
func (m *Manager) Insert(symbol string, entry orderbookv1.Entry) (orderbookv1.Entry, error) {
	b, err := m.Book(symbol)
	if err != nil {
		return entry, err
	}
	return b.Insert(entry)
}

// Remove deletes an entry from the book of symbol.
func (m *Manager) Remove(symbol string, side orderv1.Side, price decimal.Decimal, orderID string) error {
	b, err := m.Book(symbol)
	if err != nil {
		return err
	}
	return b.Remove(side, price, orderID)
}

// ReduceQuantity sets the remaining quantity of an entry in the book of symbol.
func (m *Manager) ReduceQuantity(symbol string, side orderv1.Side, price decimal.Decimal, orderID string, newRemaining decimal.Decimal) error {
	b, err := m.Book(symbol)
	if err != nil {
		return err
	}
	return b.ReduceQuantity(side, price, orderID, newRemaining)
}

// BestPrice returns the best price of one side of symbol.
func (m *Manager) BestPrice(symbol string, side orderv1.Side) (decimal.Decimal, bool) {
	b, err := m.Book(symbol)
	if err != nil {
		return decimal.Zero, false
	}
	return b.BestPrice(side)
}

// EntriesAt returns the FIFO entries of a level of symbol.
func (m *Manager) EntriesAt(symbol string, side orderv1.Side, price decimal.Decimal) []orderbookv1.Entry {
	b, err := m.Book(symbol)
	if err != nil {
		return nil
	}
	return b.EntriesAt(side, price)
}

// DepthSnapshot returns up to limit levels per side of symbol.
func (m *Manager) DepthSnapshot(symbol string, limit int) (*orderbookv1.Depth, error) {
	b, err := m.Book(symbol)
	if err != nil {
		return nil, err
	}
	return b.Depth(limit), nil
}

// BestBidAsk returns the top of the book of symbol.
func (m *Manager) BestBidAsk(symbol string) (orderbookv1.BestBidAsk, error) {
	b, err := m.Book(symbol)
	if err != nil {
		return orderbookv1.BestBidAsk{Symbol: symbol}, err
	}
	return b.BestBidAsk(), nil
}
