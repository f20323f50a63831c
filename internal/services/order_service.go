package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"time"
	"unicode/utf8"

	"techstore/internal/domain"
	rabbit "techstore/internal/infra/rabbitmq"
	"techstore/internal/repository"

	"github.com/shopspring/decimal"
)

const maxOrderNumberAttempts = 3

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type CartLine struct {
	ProductID string
	Quantity  int
}

type PlaceOrderInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Items         []CartLine
}

type OrderService struct {
	orders             repository.OrderRepository
	products           repository.ProductRepository
	publisher          rabbit.PublisherInterface
	enforceTransitions bool
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, pub rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		orders:             orders,
		products:           products,
		publisher:          pub,
		enforceTransitions: true,
	}
}

// SetFreeStatusTransitions drops the transition table so admins can move
// an order between any two states.
func (s *OrderService) SetFreeStatusTransitions(free bool) {
	s.enforceTransitions = !free
}

// PlaceOrder turns a cart into a durable PENDING order: every product
// must be active and sufficiently stocked, prices are snapshotted into
// line items, and the insert plus stock decrements happen in one
// transaction with no partial effect on failure.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if err := validatePlaceOrderInput(in); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(in.Items))
	for _, line := range in.Items {
		ids = append(ids, line.ProductID)
	}

	products, err := s.products.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(products) != len(ids) {
		return nil, &domain.ValidationError{Message: "one or more products are unavailable"}
	}

	productByID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		product, ok := productByID[line.ProductID]
		if !ok {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("product %s is unavailable", line.ProductID)}
		}

		if product.Stock < line.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   line.Quantity,
			}
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)

		items = append(items, domain.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			Quantity:     line.Quantity,
			Subtotal:     subtotal,
		})
	}

	order := &domain.Order{
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		TotalAmount:   total,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
		OrderItems:    items,
	}

	// The DB unique constraint is the authoritative guard on the order
	// number; on a collision we regenerate and retry a few times.
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		order.OrderNumber = generateOrderNumber()
		err = s.orders.Create(ctx, order)
		if !errors.Is(err, domain.ErrOrderNumberTaken) {
			break
		}
	}
	if errors.Is(err, domain.ErrOrderNumberTaken) {
		return nil, &domain.ConflictError{Message: "could not allocate an order number, please retry"}
	}
	if err != nil {
		return nil, err
	}

	go s.publishEvent(context.Background(), domain.EventOrderCreated, domain.OrderCreatedEvent{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		TotalAmount:   order.TotalAmount,
		CustomerEmail: order.CustomerEmail,
		CreatedAt:     order.CreatedAt,
	})

	return order, nil
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, &domain.NotFoundError{Resource: "order"}
	}
	return o, nil
}

func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	o, err := s.orders.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, &domain.NotFoundError{Resource: "order"}
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context, status string) ([]domain.Order, error) {
	var filter *domain.OrderStatus
	if status != "" {
		parsed := domain.OrderStatus(status)
		if !parsed.Valid() {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown order status %q", status)}
		}
		filter = &parsed
	}
	return s.orders.List(ctx, filter)
}

// UpdateStatus moves an order through its lifecycle. Transitions are
// checked against the table unless free transitions are enabled.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown order status %q", status)}
	}

	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.enforceTransitions && order.Status != status && !order.Status.CanTransitionTo(status) {
		return nil, &domain.ConflictError{
			Message: fmt.Sprintf("cannot transition order from %s to %s", order.Status, status),
		}
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	order.Status = status
	return order, nil
}

// Cancel deletes an order. A PENDING order gets its reserved stock
// restored in the same transaction; any other status is deleted as-is
// since its stock consequences were settled by the payment workflow.
func (s *OrderService) Cancel(ctx context.Context, id string) error {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if order.Status == domain.StatusPending {
		return s.orders.DeleteRestoringStock(ctx, order)
	}
	return s.orders.Delete(ctx, id)
}

// ExpireStalePendingOrders cancels PENDING orders older than the payment
// window, restoring their stock. Returns how many were expired.
func (s *OrderService) ExpireStalePendingOrders(ctx context.Context, olderThan time.Duration) (int, error) {
	stale, err := s.orders.FindStalePending(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range stale {
		if err := s.orders.DeleteRestoringStock(ctx, &stale[i]); err != nil {
			log.Printf("failed to expire order %s: %v", stale[i].OrderNumber, err)
			continue
		}
		log.Printf("expired stale pending order %s", stale[i].OrderNumber)
		expired++
	}
	return expired, nil
}

func (s *OrderService) publishEvent(ctx context.Context, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		log.Printf("failed to publish %s event: %v", eventType, err)
	}
}

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%04d", time.Now().UnixMilli(), rand.Intn(10000))
}

func validatePlaceOrderInput(in PlaceOrderInput) error {
	if in.CustomerName == "" || utf8.RuneCountInString(in.CustomerName) > 100 {
		return &domain.ValidationError{Message: "customer name must be between 1 and 100 characters"}
	}
	if !emailRegex.MatchString(in.CustomerEmail) {
		return &domain.ValidationError{Message: "invalid email format"}
	}
	if in.CustomerPhone == "" || utf8.RuneCountInString(in.CustomerPhone) > 20 {
		return &domain.ValidationError{Message: "customer phone must be between 1 and 20 characters"}
	}
	if len(in.Items) == 0 {
		return &domain.ValidationError{Message: "order must contain at least one item"}
	}

	seen := make(map[string]struct{}, len(in.Items))
	for _, line := range in.Items {
		if line.ProductID == "" {
			return &domain.ValidationError{Message: "product id is required"}
		}
		if line.Quantity < 1 {
			return &domain.ValidationError{Message: "quantity must be at least 1"}
		}
		if _, dup := seen[line.ProductID]; dup {
			return &domain.ValidationError{Message: fmt.Sprintf("duplicate product %s in order", line.ProductID)}
		}
		seen[line.ProductID] = struct{}{}
	}
	return nil
}
