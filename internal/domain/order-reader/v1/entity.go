package orderreaderv1

import (
	"encoding/json"
	"fmt"

	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
)

// Action selects what an order command does.
type Action string

const (
	ActionSubmit Action = "submit"
	ActionCancel Action = "cancel"
)

// CancelRequest identifies the order to cancel. Symbol routes the command to the
// partition of the order's book.
type CancelRequest struct {
	UserID  string `json:"userID"`
	Symbol  string `json:"symbol"`
	OrderID string `json:"orderID"`
}

// OrderCommand is the payload of the inbound order command topic.
type OrderCommand struct {
	Action    Action                      `json:"action"`
	RequestID string                      `json:"requestID,omitempty"`
	Submit    *orderv1.SubmitOrderRequest `json:"submit,omitempty"`
	Cancel    *CancelRequest              `json:"cancel,omitempty"`
}

// Key returns the partition key of the command. Commands of one symbol share a partition.
func (c *OrderCommand) Key() string {
	if c.Submit != nil {
		return c.Submit.Symbol
	}
	if c.Cancel != nil {
		return c.Cancel.Symbol
	}
	return ""
}

// Validate checks that the command carries the payload its action needs.
func (c *OrderCommand) Validate() error {
	switch c.Action {
	case ActionSubmit:
		if c.Submit == nil {
			return fmt.Errorf("submit command without payload")
		}
	case ActionCancel:
		if c.Cancel == nil || c.Cancel.OrderID == "" || c.Cancel.UserID == "" || c.Cancel.Symbol == "" {
			return fmt.Errorf("cancel command needs user, symbol and order id")
		}
	default:
		return fmt.Errorf("unknown action %q", c.Action)
	}
	return nil
}

// ToBytes encodes the command as JSON.
func (c *OrderCommand) ToBytes() ([]byte, error) {
	return json.Marshal(c)
}

// FromBytes decodes and validates a JSON command.
func FromBytes(data []byte) (*OrderCommand, error) {
	var cmd OrderCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if err := cmd.Validate(); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &cmd, nil
}
