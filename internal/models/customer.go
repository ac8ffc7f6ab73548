package models

import "time"

// Статусы клиента в CRM-части админки.
const (
	CustomerActive  = "active"
	CustomerBlocked = "blocked"
)

// Customer — карточка клиента для админ-консоли. Создаётся вместе с User
// при регистрации и дальше живёт своей жизнью: админ может блокировать
// и удалять её, не затрагивая учётную запись пользователя. Логика
// квот и подписок на эту запись не опирается.
type Customer struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	City        string     `json:"city,omitempty"`
	Country     string     `json:"country,omitempty"`
	ZipCode     string     `json:"zip_code,omitempty"`
	Status      string     `json:"status"`
	TotalOrders int        `json:"total_orders"`
	TotalSpent  float64    `json:"total_spent"`
	LastActive  *time.Time `json:"last_active,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// CustomerStats — агрегаты по клиентам для дашборда.
type CustomerStats struct {
	Total   int     `json:"total"`
	Active  int     `json:"active"`
	Blocked int     `json:"blocked"`
	Revenue float64 `json:"revenue"`
}
