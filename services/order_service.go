package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"canteen/entity"
	"canteen/pkg/apperr"
	"canteen/pkg/events"
	"canteen/pkg/locker"
	"canteen/repository"
)

// orderStore is the slice of order persistence the processor needs.
// *repository.OrderRepository satisfies it; tests wrap it to inject faults.
type orderStore interface {
	CreateOrder(tx *gorm.DB, o *entity.Order) error
	CreateOrderItem(tx *gorm.DB, it *entity.OrderItem) error
	ListForUser(ctx context.Context, userID uint) ([]entity.Order, error)
	GetForUser(ctx context.Context, userID, orderID uint) (*entity.Order, error)
}

// EventPublisher pushes service events to the broker. Nil when no broker is
// configured.
type EventPublisher interface {
	PublishJSON(routingKey string, v any) error
}

// OrderNotifier receives a created order for live delivery to staff clients.
type OrderNotifier interface {
	OrderCreated(o *entity.Order)
}

// OrderService converts a user's cart into an immutable order. The order row,
// its item snapshots and the cart clearing commit as one unit or not at all.
type OrderService struct {
	DB      *gorm.DB
	Orders  orderStore
	Cart    *repository.CartRepository
	Locks   *locker.KeyedMutex
	Timeout time.Duration

	Publisher EventPublisher
	Notifier  OrderNotifier
}

func NewOrderService(db *gorm.DB, orders *repository.OrderRepository, cart *repository.CartRepository, locks *locker.KeyedMutex, timeout time.Duration, pub EventPublisher, notifier OrderNotifier) *OrderService {
	return &OrderService{
		DB:        db,
		Orders:    orders,
		Cart:      cart,
		Locks:     locks,
		Timeout:   timeout,
		Publisher: pub,
		Notifier:  notifier,
	}
}

// Place reads the whole cart, writes the order with its line snapshots and
// clears the cart in one transaction. Runs under a detached timeout context:
// a client disconnect never leaves a half-applied order. Holding the user's
// lock for the full sequence means two concurrent calls cannot both consume
// the same cart snapshot.
func (s *OrderService) Place(userID uint) (*entity.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	s.Locks.Lock(userID)
	defer s.Locks.Unlock(userID)

	lines, err := s.Cart.ListForUser(ctx, userID)
	if err != nil {
		return nil, persistence(err)
	}
	if len(lines) == 0 {
		return nil, apperr.ErrEmptyCart
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	order := &entity.Order{
		Reference:  uuid.NewString(),
		UserID:     userID,
		TotalPrice: total,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Orders.CreateOrder(tx, order); err != nil {
			return err
		}
		for _, l := range lines {
			item := entity.OrderItem{
				OrderID:    order.ID,
				MenuItemID: l.MenuItemID,
				Quantity:   l.Quantity,
				UnitPrice:  l.UnitPrice,
			}
			if err := s.Orders.CreateOrderItem(tx, &item); err != nil {
				return err
			}
			order.Items = append(order.Items, item)
		}
		return s.Cart.ClearForUser(tx, userID)
	})
	if err != nil {
		return nil, persistence(err)
	}

	s.announce(order)
	return order, nil
}

// announce runs only after commit; a broker or feed hiccup never fails the
// order.
func (s *OrderService) announce(o *entity.Order) {
	if s.Notifier != nil {
		s.Notifier.OrderCreated(o)
	}
	if s.Publisher == nil {
		return
	}

	payload := events.OrderCreatedPayload{
		OrderID:   o.ID,
		Reference: o.Reference,
		UserID:    o.UserID,
		Total:     o.TotalPrice.String(),
	}
	for _, it := range o.Items {
		payload.Lines = append(payload.Lines, events.OrderLineEvt{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice.String(),
		})
	}
	if err := s.Publisher.PublishJSON(events.RKOrderCreated, payload); err != nil {
		log.Error().Err(err).Uint("orderId", o.ID).Msg("publish order.created failed")
	}
}

func (s *OrderService) ListForUser(ctx context.Context, userID uint) ([]entity.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	orders, err := s.Orders.ListForUser(ctx, userID)
	if err != nil {
		return nil, persistence(err)
	}
	return orders, nil
}

func (s *OrderService) DetailForUser(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	return s.Orders.GetForUser(ctx, userID, orderID)
}
