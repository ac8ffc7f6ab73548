package razorpay

// CreateOrderRequest представляет запрос на создание заказа в Razorpay.
// Amount задаётся в минорных единицах валюты (пайсах), то есть рубли/рупии ×100.
type CreateOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Order представляет заказ, созданный в Razorpay.
type Order struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}
