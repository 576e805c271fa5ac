package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/internal/domain/trade"
	"go.uber.org/zap"
)

var (
	errOrderNotFound   = shared.NewDomainError(shared.CodeNotFound, "Order not found")
	errContactNotFound = shared.NewDomainError(shared.CodeNotFound, "Contact not found")
)

// OrderService places orders and moves them through their statuses
type OrderService struct {
	tx       shared.Transactor
	orders   trade.OrderRepository
	contacts identity.ContactRepository
	shops    catalog.ShopRepository
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	tx shared.Transactor,
	orders trade.OrderRepository,
	contacts identity.ContactRepository,
	shops catalog.ShopRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	if events == nil {
		events = shared.NopEventPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		tx:       tx,
		orders:   orders,
		contacts: contacts,
		shops:    shops,
		events:   events,
		logger:   logger,
	}
}

// Place turns the caller's basket into a new order delivered to one of the
// caller's contacts
func (s *OrderService) Place(ctx context.Context, caller identity.Caller, orderID, contactID uuid.UUID) (*OrderView, error) {
	if err := caller.RequireAuthenticated(); err != nil {
		return nil, err
	}

	var order *trade.Order
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		contact, err := s.contacts.FindByIDForUser(ctx, caller.UserID, contactID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return errContactNotFound
			}
			return err
		}
		order, err = s.orders.FindByIDForUser(ctx, orderID, caller.UserID)
		if err != nil {
			return notFound(err)
		}
		if !order.IsBasket() {
			return errOrderNotFound
		}
		if err := order.Place(contact.ID); err != nil {
			return err
		}
		return s.orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order placed", zap.String("order_id", order.ID.String()), zap.String("user_id", caller.UserID.String()))
	s.publish(ctx, order)
	view := ToOrderView(order)
	return &view, nil
}

// SetStatus moves an order to the status named by raw. The order owner and
// the shops whose listings the order contains may do so; everybody else gets
// NotFound. Setting the current status again changes nothing.
func (s *OrderService) SetStatus(ctx context.Context, caller identity.Caller, orderID uuid.UUID, raw string) (*OrderView, error) {
	if err := caller.RequireAuthenticated(); err != nil {
		return nil, err
	}
	target, err := trade.ParseOrderStatus(raw)
	if err != nil {
		return nil, err
	}
	if target == trade.OrderStatusBasket {
		return nil, shared.NewDomainError(shared.CodeInvalidStatus, "An order cannot be returned to the basket")
	}

	var order *trade.Order
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		order, err = s.orders.FindByID(ctx, orderID)
		if err != nil {
			return notFound(err)
		}
		if err := s.authorize(ctx, caller, order); err != nil {
			return err
		}
		changed, err := order.ChangeStatus(target)
		if err != nil || !changed {
			return err
		}
		return s.orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order)
	view := ToOrderView(order)
	return &view, nil
}

func (s *OrderService) authorize(ctx context.Context, caller identity.Caller, order *trade.Order) error {
	if order.UserID == caller.UserID {
		return nil
	}
	if !caller.IsShop() || order.IsBasket() {
		return errOrderNotFound
	}
	shop, err := s.shops.FindByOwner(ctx, caller.UserID)
	if err != nil {
		return notFound(err)
	}
	if !order.ContainsShop(shop.ID) {
		return errOrderNotFound
	}
	return nil
}

// ListOrders returns the caller's placed orders with totals
func (s *OrderService) ListOrders(ctx context.Context, caller identity.Caller) ([]OrderView, error) {
	if err := caller.RequireAuthenticated(); err != nil {
		return nil, err
	}
	orders, err := s.orders.FindByUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return ToOrderViews(orders), nil
}

// ListShopOrders returns the placed orders that contain listings of the
// caller's shop
func (s *OrderService) ListShopOrders(ctx context.Context, caller identity.Caller) ([]OrderView, error) {
	if err := caller.RequireShop(); err != nil {
		return nil, err
	}
	shop, err := s.shops.FindByOwner(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return []OrderView{}, nil
		}
		return nil, err
	}
	orders, err := s.orders.FindByShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	return ToOrderViews(orders), nil
}

// publish announces the order's events once its transaction has committed
func (s *OrderService) publish(ctx context.Context, order *trade.Order) {
	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish order events", zap.String("order_id", order.ID.String()), zap.Error(err))
	}
}

func notFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return errOrderNotFound
	}
	return err
}
