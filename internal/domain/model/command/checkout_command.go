package model

import (
	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/shopspring/decimal"
)

const (
	SelectPaymentCommandName CommandType = "SelectPayment"
	CheckoutCommandName      CommandType = "Checkout"
)

// Received 只有現金需要
type SelectPaymentCommand struct {
	BaseCommand
	Method   model.PaymentMethod `json:"method"`
	Received decimal.Decimal     `json:"received"`
}

func NewSelectPaymentCommand(method model.PaymentMethod, received decimal.Decimal) *SelectPaymentCommand {
	return &SelectPaymentCommand{
		BaseCommand: NewBaseCommand(),
		Method:      method,
		Received:    received,
	}
}

func (c *SelectPaymentCommand) Type() CommandType {
	return SelectPaymentCommandName
}

type CheckoutCommand struct {
	BaseCommand
}

func NewCheckoutCommand() *CheckoutCommand {
	return &CheckoutCommand{BaseCommand: NewBaseCommand()}
}

func (c *CheckoutCommand) Type() CommandType {
	return CheckoutCommandName
}
