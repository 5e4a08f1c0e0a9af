package db

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrStockConflict 條件扣庫存沒有命中任何一筆，代表庫存已被其他收銀台扣掉
	ErrStockConflict = errors.New("stock conflict")
)

func mapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// affected 更新/刪除沒有影響任何一筆視為不存在
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
