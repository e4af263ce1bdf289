package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coffee-shop-api/internal/logger"
	"coffee-shop-api/internal/models"
	"coffee-shop-api/internal/pricing"
	"coffee-shop-api/internal/store"
	"coffee-shop-api/internal/validation"
)

// EventPublisher receives order lifecycle events after successful
// mutations.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event models.OrderEvent) error
}

// NopPublisher discards events; used when RabbitMQ is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(context.Context, models.OrderEvent) error { return nil }

// Service orchestrates validation, pricing and store mutation. Stores are
// touched only after validation and pricing both succeed, so a rejected
// operation never leaves a partial mutation behind.
type Service struct {
	menu      store.MenuStore
	orders    store.OrderStore
	publisher EventPublisher
	logger    *logger.Logger
}

// New wires the service with its stores and event publisher.
func New(menu store.MenuStore, orders store.OrderStore, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		menu:      menu,
		orders:    orders,
		publisher: publisher,
		logger:    log,
	}
}

// ListMenu returns all catalog entries in insertion order.
func (s *Service) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	return s.menu.List(ctx)
}

// GetMenuItem returns a single catalog entry.
func (s *Service) GetMenuItem(ctx context.Context, id int) (models.MenuItem, error) {
	item, err := s.menu.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.MenuItem{}, &NotFoundError{Entity: EntityMenuItem, ID: id}
		}
		return models.MenuItem{}, err
	}
	return item, nil
}

// CreateMenuItem validates and inserts a new catalog entry.
func (s *Service) CreateMenuItem(ctx context.Context, candidate *models.MenuItemCandidate) (models.MenuItem, error) {
	if errs := validation.ValidateMenuItem(candidate); len(errs) > 0 {
		return models.MenuItem{}, &ValidationError{Errors: errs}
	}

	item, err := s.menu.Insert(ctx, buildMenuItem(candidate))
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("failed to insert menu item: %w", err)
	}

	s.logger.Info("menu_item_created", RequestIDFrom(ctx),
		fmt.Sprintf("Menu item %d created", item.ID))
	return item, nil
}

// UpdateMenuItem replaces a catalog entry wholesale, keeping its id. The
// existence check runs before body validation so a bad id with a bad body
// still reads as a not-found.
func (s *Service) UpdateMenuItem(ctx context.Context, id int, candidate *models.MenuItemCandidate) (models.MenuItem, error) {
	if _, err := s.menu.Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.MenuItem{}, &NotFoundError{Entity: EntityMenuItem, ID: id}
		}
		return models.MenuItem{}, err
	}

	if errs := validation.ValidateMenuItem(candidate); len(errs) > 0 {
		return models.MenuItem{}, &ValidationError{Errors: errs}
	}

	item, err := s.menu.Replace(ctx, id, buildMenuItem(candidate))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.MenuItem{}, &NotFoundError{Entity: EntityMenuItem, ID: id}
		}
		return models.MenuItem{}, fmt.Errorf("failed to replace menu item: %w", err)
	}

	s.logger.Info("menu_item_updated", RequestIDFrom(ctx),
		fmt.Sprintf("Menu item %d updated", id))
	return item, nil
}

// ListOrders returns all orders in insertion order.
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

// GetOrder returns a single order.
func (s *Service) GetOrder(ctx context.Context, id int) (models.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Order{}, &NotFoundError{Entity: EntityOrder, ID: id}
		}
		return models.Order{}, err
	}
	return order, nil
}

// CreateOrder validates the candidate, prices it against the current
// catalog and inserts it. Any supplied total_price is discarded.
func (s *Service) CreateOrder(ctx context.Context, candidate *models.OrderCandidate) (models.Order, error) {
	order, err := s.priceCandidate(ctx, candidate)
	if err != nil {
		return models.Order{}, err
	}

	order, err = s.orders.Insert(ctx, order)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	s.logger.Info("order_created", RequestIDFrom(ctx),
		fmt.Sprintf("Order %d created, total %.2f", order.ID, order.TotalPrice))
	s.publishEvent(ctx, models.EventOrderCreated, order)
	return order, nil
}

// UpdateOrder replaces an order wholesale after re-validating and
// re-pricing it. Existence is checked before the body, matching the error
// precedence of the delete path.
func (s *Service) UpdateOrder(ctx context.Context, id int, candidate *models.OrderCandidate) (models.Order, error) {
	if _, err := s.orders.Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Order{}, &NotFoundError{Entity: EntityOrder, ID: id}
		}
		return models.Order{}, err
	}

	order, err := s.priceCandidate(ctx, candidate)
	if err != nil {
		return models.Order{}, err
	}

	order, err = s.orders.Replace(ctx, id, order)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Order{}, &NotFoundError{Entity: EntityOrder, ID: id}
		}
		return models.Order{}, fmt.Errorf("failed to replace order: %w", err)
	}

	s.logger.Info("order_updated", RequestIDFrom(ctx),
		fmt.Sprintf("Order %d updated, total %.2f", id, order.TotalPrice))
	s.publishEvent(ctx, models.EventOrderUpdated, order)
	return order, nil
}

// DeleteOrder removes an order. Deleting an absent id fails not-found, so a
// second delete of the same id is rejected.
func (s *Service) DeleteOrder(ctx context.Context, id int) error {
	err := s.orders.Remove(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &NotFoundError{Entity: EntityOrder, ID: id}
		}
		return fmt.Errorf("failed to remove order: %w", err)
	}

	s.logger.Info("order_deleted", RequestIDFrom(ctx),
		fmt.Sprintf("Order %d deleted", id))
	s.publishEvent(ctx, models.EventOrderDeleted, models.Order{ID: id})
	return nil
}

// priceCandidate runs validation and pricing, returning the order ready for
// insertion (without an id).
func (s *Service) priceCandidate(ctx context.Context, candidate *models.OrderCandidate) (models.Order, error) {
	if errs := validation.ValidateOrder(candidate); len(errs) > 0 {
		return models.Order{}, &ValidationError{Errors: errs}
	}

	order := buildOrder(candidate)

	catalog, err := s.menu.List(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to snapshot catalog: %w", err)
	}

	total, err := pricing.Total(order.Items, pricing.Snapshot(catalog))
	if err != nil {
		var notFound *pricing.NotFoundError
		if errors.As(err, &notFound) {
			return models.Order{}, &NotFoundError{Entity: EntityMenuItem, ID: notFound.MenuItemID}
		}
		return models.Order{}, err
	}
	order.TotalPrice = total
	return order, nil
}

// publishEvent is best-effort: a broker failure is logged but never fails
// the already-committed mutation.
func (s *Service) publishEvent(ctx context.Context, name string, order models.Order) {
	event := models.OrderEvent{
		Event:        name,
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		TotalPrice:   order.TotalPrice,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Error("event_publish_failed", RequestIDFrom(ctx),
			fmt.Sprintf("Failed to publish %s event", name), err)
	}
}

func buildOrder(candidate *models.OrderCandidate) models.Order {
	items := make([]models.OrderItem, len(candidate.Items))
	for i, item := range candidate.Items {
		items[i] = models.OrderItem{
			MenuItemID: *item.MenuItemID,
			Quantity:   *item.Quantity,
		}
	}
	return models.Order{
		CustomerName: *candidate.CustomerName,
		Items:        items,
	}
}

func buildMenuItem(candidate *models.MenuItemCandidate) models.MenuItem {
	item := models.MenuItem{
		Name:       *candidate.Name,
		Price:      *candidate.Price,
		ExtraItems: candidate.ExtraItems,
	}
	if candidate.Description != nil {
		item.Description = *candidate.Description
	}
	if candidate.Size != nil {
		item.Size = models.ItemSize(*candidate.Size)
	}
	for _, modifier := range candidate.Modifiers {
		item.Modifiers = append(item.Modifiers, models.Modifier{
			Name:    *modifier.Name,
			Options: modifier.Options,
		})
	}
	if candidate.Promotion != nil {
		promotion := &models.Promotion{Type: models.PromotionType(*candidate.Promotion.Type)}
		if candidate.Promotion.Amount != nil {
			promotion.Amount = *candidate.Promotion.Amount
		}
		if candidate.Promotion.Description != nil {
			promotion.Description = *candidate.Promotion.Description
		}
		item.Promotion = promotion
	}
	return item
}

type requestIDKey struct{}

// WithRequestID stores the transport-assigned request id for log
// correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFrom extracts the request id, or empty when none was attached.
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
