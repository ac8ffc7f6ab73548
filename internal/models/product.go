package models

import "time"

// Категории товаров. Закрытый список, проверяется валидатором на входе.
var ProductCategories = []string{"skincare", "haircare", "makeup", "fragrance", "wellness", "other"}

// Статусы наличия. Статус не хранится в базе, а выводится из Stock
// при каждом чтении, поэтому разъехаться со складом он не может.
const (
	ProductInStock    = "In Stock"
	ProductLowStock   = "Low stock"
	ProductOutOfStock = "Out of stock"
)

// Product представляет PDF-документ в каталоге витрины.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"` // производное поле, см. StockStatus
	ImageURL    string    `json:"image_url,omitempty"`
	PdfURL      string    `json:"pdf_url,omitempty"`
	Sold        int       `json:"sold"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockStatus возвращает статус наличия для заданного остатка:
// 0 — Out of stock, 1..10 — Low stock, больше — In Stock.
func StockStatus(stock int) string {
	switch {
	case stock == 0:
		return ProductOutOfStock
	case stock <= 10:
		return ProductLowStock
	default:
		return ProductInStock
	}
}

// DummyProduct используется для приёма данных товара из JSON-запроса.
type DummyProduct struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description"`
	Category    string  `json:"category" validate:"required,oneof=skincare haircare makeup fragrance wellness other"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    string  `json:"image_url"`
	PdfURL      string  `json:"pdf_url"`
}
