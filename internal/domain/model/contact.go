package model

// Client 客戶，只有CRUD
type Client struct {
	ClientID uint   `gorm:"primaryKey" json:"client_id"`
	Name     string `gorm:"not null;type:varchar(100)" json:"name"`
	Email    string `gorm:"type:varchar(100)" json:"email"`
	Phone    string `gorm:"type:varchar(50)" json:"phone"`
	Address  string `gorm:"type:varchar(255)" json:"address"`
	BaseModel
}

// Supplier 供應商，只有CRUD
type Supplier struct {
	SupplierID uint   `gorm:"primaryKey" json:"supplier_id"`
	Company    string `gorm:"not null;type:varchar(100)" json:"company"`
	Contact    string `gorm:"type:varchar(100)" json:"contact"`
	Email      string `gorm:"type:varchar(100)" json:"email"`
	Phone      string `gorm:"type:varchar(50)" json:"phone"`
	Address    string `gorm:"type:varchar(255)" json:"address"`
	Products   string `gorm:"type:text" json:"products"` // 供應品項，自由文字
	BaseModel
}
