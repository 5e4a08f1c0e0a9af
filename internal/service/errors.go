package service

import (
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
)

var (
	ErrOutOfStock              = model.ErrOutOfStock
	ErrEmptyCart               = errors.New("cart is empty")
	ErrNoPaymentMethodSelected = errors.New("no payment method selected")
	ErrInsufficientPayment     = errors.New("insufficient payment")
	ErrPersistenceUnavailable  = errors.New("persistence unavailable")
	ErrNotFound                = errors.New("not found")
	ErrStockConflict           = errors.New("stock changed, catalog refreshed")
	ErrInvalidArgument         = errors.New("invalid argument")
	ErrAlreadyExists           = errors.New("already exists")
	ErrUnauthenticated         = errors.New("unauthenticated")
)

// translateStoreErr 將持久層錯誤轉成服務層錯誤
// 無法辨識的錯誤一律視為 ErrPersistenceUnavailable
func translateStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, db.ErrStockConflict):
		return fmt.Errorf("%w: %w", ErrStockConflict, err)
	default:
		return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}
}

// translateCartErr 購物車錯誤，庫存不足維持原樣
func translateCartErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrInvalidQuantityDelta):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	case errors.Is(err, model.ErrCartLineNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return err
	}
}
