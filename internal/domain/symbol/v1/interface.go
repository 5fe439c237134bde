package symbolv1

import "context"

// Registry is the read-only source of symbol trading rules.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=symbolv1_mock
type Registry interface {
	// GetSymbol returns the symbol or a symbol unavailable error when it is unknown.
	GetSymbol(ctx context.Context, symbol string) (*Symbol, error)
	// ListSymbols returns every symbol with the given status, or all of them when status is empty.
	ListSymbols(ctx context.Context, status Status) ([]*Symbol, error)
}
