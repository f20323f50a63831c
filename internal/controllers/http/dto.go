package http

type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid4"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	CustomerName  string             `json:"customerName" binding:"required,max=100"`
	CustomerEmail string             `json:"customerEmail" binding:"required,email"`
	CustomerPhone string             `json:"customerPhone" binding:"required,max=20"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

type RemoveImageRequest struct {
	ImageURL string `json:"imageUrl" binding:"required,url"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type PayerIdentificationRequest struct {
	Type   string `json:"type" binding:"required"`
	Number string `json:"number" binding:"required"`
}

type PayerRequest struct {
	Email          string                     `json:"email" binding:"required,email"`
	Identification PayerIdentificationRequest `json:"identification" binding:"required"`
}

type ProcessPaymentRequest struct {
	OrderID         string       `json:"orderId" binding:"required,uuid4"`
	Token           string       `json:"token" binding:"required"`
	PaymentMethodID string       `json:"paymentMethodId" binding:"required"`
	Installments    int          `json:"installments" binding:"required,min=1"`
	Payer           PayerRequest `json:"payer" binding:"required"`
}
