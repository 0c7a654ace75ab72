package models

// Product is a row in the products table. Price is the stored numeric
// value; display formatting happens at render time only.
type Product struct {
	Base
	Name            string  `gorm:"not null" json:"name"`
	Price           float64 `gorm:"type:numeric(12,2);not null" json:"price"`
	Image           string  `json:"image"` // filename under the upload dir
	Description     string  `gorm:"type:text" json:"description"`
	Characteristics string  `gorm:"type:text" json:"characteristics"`
}
