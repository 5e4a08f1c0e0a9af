package model

import (
	"time"

	"gorm.io/gorm"
)

// 可編輯資料表共用欄位，刪除一律為軟刪除
type BaseModel struct {
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
