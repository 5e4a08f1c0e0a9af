package model

const (
	CartAddProductCommandName     CommandType = "CartAddProduct"
	CartAddByBarcodeCommandName   CommandType = "CartAddByBarcode"
	CartChangeQuantityCommandName CommandType = "CartChangeQuantity"
	CartRemoveLineCommandName     CommandType = "CartRemoveLine"
	CartClearCommandName          CommandType = "CartClear"
)

type CartAddProductCommand struct {
	BaseCommand
	ProductID uint `json:"product_id"`
}

func NewCartAddProductCommand(productID uint) *CartAddProductCommand {
	return &CartAddProductCommand{
		BaseCommand: NewBaseCommand(),
		ProductID:   productID,
	}
}

func (c *CartAddProductCommand) Type() CommandType {
	return CartAddProductCommandName
}

type CartAddByBarcodeCommand struct {
	BaseCommand
	Barcode string `json:"barcode"`
}

func NewCartAddByBarcodeCommand(barcode string) *CartAddByBarcodeCommand {
	return &CartAddByBarcodeCommand{
		BaseCommand: NewBaseCommand(),
		Barcode:     barcode,
	}
}

func (c *CartAddByBarcodeCommand) Type() CommandType {
	return CartAddByBarcodeCommandName
}

// delta 只接受 +1 / -1
type CartChangeQuantityCommand struct {
	BaseCommand
	ProductID uint `json:"product_id"`
	Delta     int  `json:"delta"`
}

func NewCartChangeQuantityCommand(productID uint, delta int) *CartChangeQuantityCommand {
	return &CartChangeQuantityCommand{
		BaseCommand: NewBaseCommand(),
		ProductID:   productID,
		Delta:       delta,
	}
}

func (c *CartChangeQuantityCommand) Type() CommandType {
	return CartChangeQuantityCommandName
}

type CartRemoveLineCommand struct {
	BaseCommand
	ProductID uint `json:"product_id"`
}

func NewCartRemoveLineCommand(productID uint) *CartRemoveLineCommand {
	return &CartRemoveLineCommand{
		BaseCommand: NewBaseCommand(),
		ProductID:   productID,
	}
}

func (c *CartRemoveLineCommand) Type() CommandType {
	return CartRemoveLineCommandName
}

// 清空整個購物車
type CartClearCommand struct {
	BaseCommand
}

func NewCartClearCommand() *CartClearCommand {
	return &CartClearCommand{BaseCommand: NewBaseCommand()}
}

func (c *CartClearCommand) Type() CommandType {
	return CartClearCommandName
}
