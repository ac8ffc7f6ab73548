package models

import "time"

// Статусы подписки. Активной подписки у пользователя может быть не больше одной:
// активация новой атомарно переводит все прежние активные в expired.
const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// Subscription представляет оплаченный тарифный план пользователя.
type Subscription struct {
	ID                int       `json:"id"`
	UserUID           string    `json:"user_uid"`
	PlanName          string    `json:"plan_name"`
	Amount            float64   `json:"amount"`
	RazorpayOrderID   string    `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string    `json:"razorpay_payment_id,omitempty"`
	StartDate         time.Time `json:"start_date"`
	ExpiryDate        time.Time `json:"expiry_date"`
	Status            string    `json:"status"`
}

// PurchaseInfo — строка отчёта о покупках для админ-консоли:
// подписка, обогащённая данными владельца.
type PurchaseInfo struct {
	ID           int       `json:"id"`
	CustomerName string    `json:"customer_name"`
	Email        string    `json:"email"`
	PlanName     string    `json:"plan_name"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	PurchaseDate time.Time `json:"purchase_date"`
	ExpiryDate   time.Time `json:"expiry_date"`
	Features     []string  `json:"features"`
}
