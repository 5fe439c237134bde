package order

import (
	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	symbolv1 "github.com/hoanghiep2625/cex-be/internal/domain/symbol/v1"
)

// applyDefaults fills in the time in force a request left out.
func applyDefaults(o *orderv1.Order) {
	if o.TimeInForce != "" {
		return
	}
	if o.Type == orderv1.TypeMarket {
		o.TimeInForce = orderv1.IOC
		return
	}
	o.TimeInForce = orderv1.GTC
}

// validate checks an order against the trading rules of its symbol.
func validate(sym *symbolv1.Symbol, o *orderv1.Order) error {
	if o.UserID == "" {
		return orderv1.NewValidationError("userID", "user id is required")
	}
	if !o.Side.IsValid() {
		return orderv1.NewValidationError("side", "invalid side %q", o.Side)
	}
	if !o.Type.IsValid() {
		return orderv1.NewValidationError("type", "invalid order type %q", o.Type)
	}
	if !o.TimeInForce.IsValid() {
		return orderv1.NewValidationError("timeInForce", "invalid time in force %q", o.TimeInForce)
	}

	if !o.Quantity.IsPositive() {
		return orderv1.NewValidationError("quantity", "quantity must be positive")
	}
	if o.Quantity.LessThan(sym.MinQty) {
		return orderv1.NewValidationError("quantity", "quantity %s is below the minimum %s", o.Quantity, sym.MinQty)
	}
	if sym.MaxQty.Valid && o.Quantity.GreaterThan(sym.MaxQty.Decimal) {
		return orderv1.NewValidationError("quantity", "quantity %s is above the maximum %s", o.Quantity, sym.MaxQty.Decimal)
	}
	if !symbolv1.IsMultiple(o.Quantity, sym.LotSize) {
		return orderv1.NewValidationError("quantity", "quantity %s is not a multiple of lot size %s", o.Quantity, sym.LotSize)
	}

	if o.Type == orderv1.TypeMarket {
		if o.Price.Valid {
			return orderv1.NewValidationError("price", "market orders take no price")
		}
		if o.TimeInForce == orderv1.GTC {
			return orderv1.NewValidationError("timeInForce", "market orders cannot rest on the book")
		}
		return nil
	}

	if !o.Price.Valid || !o.Price.Decimal.IsPositive() {
		return orderv1.NewValidationError("price", "limit orders need a positive price")
	}
	price := o.Price.Decimal
	if !symbolv1.IsMultiple(price, sym.TickSize) {
		return orderv1.NewValidationError("price", "price %s is not a multiple of tick size %s", price, sym.TickSize)
	}

	notional := price.Mul(o.Quantity)
	if notional.LessThan(sym.MinNotional) {
		return orderv1.NewValidationError("notional", "notional %s is below the minimum %s", notional, sym.MinNotional)
	}
	if sym.MaxNotional.Valid && notional.GreaterThan(sym.MaxNotional.Decimal) {
		return orderv1.NewValidationError("notional", "notional %s is above the maximum %s", notional, sym.MaxNotional.Decimal)
	}

	return nil
}
