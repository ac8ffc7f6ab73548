package models

import "time"

// PdfPurchase представляет разовую покупку конкретного PDF,
// в отличие от подписки на тарифный план. Запись создаётся только
// после успешной проверки подписи платёжного провайдера.
type PdfPurchase struct {
	ID                int       `json:"id"`
	UserUID           string    `json:"user_uid"`
	ProductID         int       `json:"product_id"`
	PdfName           string    `json:"pdf_name"`
	Amount            float64   `json:"amount"`
	RazorpayOrderID   string    `json:"razorpay_order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}
