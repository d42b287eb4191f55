package response_models

type CreateCheckoutResponse struct {
	OrderCode    int64  `json:"order_code"`
	AmountMinor  int64  `json:"amount"`
	Credits      int    `json:"credits"`
	PaymentURL   string `json:"payment_url"`
	ProviderName string `json:"provider"`
}
