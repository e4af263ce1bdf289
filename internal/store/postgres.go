package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"coffee-shop-api/internal/database"
	"coffee-shop-api/internal/models"
)

// PostgresMenuStore implements MenuStore on top of the shared pgx pool. It
// is the opt-in backend for deployments that want the catalog to survive a
// restart; the service is oblivious to which backend it talks to.
type PostgresMenuStore struct {
	db *database.DB
}

// NewPostgresMenuStore creates a catalog store backed by PostgreSQL.
func NewPostgresMenuStore(db *database.DB) *PostgresMenuStore {
	return &PostgresMenuStore{db: db}
}

const menuColumns = "id, name, description, price, size, extra_items, modifiers, promotion"

func (s *PostgresMenuStore) List(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.db.Pool.Query(ctx,
		"SELECT "+menuColumns+" FROM menu_items ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var item models.MenuItem
		if err := scanMenuItem(rows, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresMenuStore) Get(ctx context.Context, id int) (models.MenuItem, error) {
	var item models.MenuItem
	row := s.db.Pool.QueryRow(ctx,
		"SELECT "+menuColumns+" FROM menu_items WHERE id = $1", id)
	if err := scanMenuItem(row, &item); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.MenuItem{}, ErrNotFound
		}
		return models.MenuItem{}, err
	}
	return item, nil
}

func (s *PostgresMenuStore) Insert(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	err := s.db.Pool.QueryRow(ctx,
		`INSERT INTO menu_items (name, description, price, size, extra_items, modifiers, promotion)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		item.Name, item.Description, item.Price, item.Size,
		item.ExtraItems, item.Modifiers, item.Promotion).Scan(&item.ID)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("failed to insert menu item: %w", err)
	}
	return item, nil
}

func (s *PostgresMenuStore) Replace(ctx context.Context, id int, item models.MenuItem) (models.MenuItem, error) {
	tag, err := s.db.Pool.Exec(ctx,
		`UPDATE menu_items
		 SET name = $1, description = $2, price = $3, size = $4,
		     extra_items = $5, modifiers = $6, promotion = $7
		 WHERE id = $8`,
		item.Name, item.Description, item.Price, item.Size,
		item.ExtraItems, item.Modifiers, item.Promotion, id)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("failed to replace menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.MenuItem{}, ErrNotFound
	}
	item.ID = id
	return item, nil
}

func scanMenuItem(row pgx.Row, item *models.MenuItem) error {
	return row.Scan(&item.ID, &item.Name, &item.Description, &item.Price,
		&item.Size, &item.ExtraItems, &item.Modifiers, &item.Promotion)
}

// PostgresOrderStore implements OrderStore on top of the shared pgx pool.
// Order lines live in a child table; replaces rewrite them inside a
// transaction so readers never observe a half-replaced order.
type PostgresOrderStore struct {
	db *database.DB
}

// NewPostgresOrderStore creates an order store backed by PostgreSQL.
func NewPostgresOrderStore(db *database.DB) *PostgresOrderStore {
	return &PostgresOrderStore{db: db}
}

func (s *PostgresOrderStore) List(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT o.id, o.customer_name, o.total_price, i.menu_item_id, i.quantity
		 FROM orders o
		 LEFT JOIN order_items i ON i.order_id = o.id
		 ORDER BY o.id, i.position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var (
			order      models.Order
			menuItemID *int
			quantity   *int
		)
		if err := rows.Scan(&order.ID, &order.CustomerName, &order.TotalPrice, &menuItemID, &quantity); err != nil {
			return nil, err
		}
		if len(orders) == 0 || orders[len(orders)-1].ID != order.ID {
			orders = append(orders, order)
		}
		if menuItemID != nil && quantity != nil {
			last := &orders[len(orders)-1]
			last.Items = append(last.Items, models.OrderItem{MenuItemID: *menuItemID, Quantity: *quantity})
		}
	}
	return orders, rows.Err()
}

func (s *PostgresOrderStore) Get(ctx context.Context, id int) (models.Order, error) {
	var order models.Order
	err := s.db.Pool.QueryRow(ctx,
		"SELECT id, customer_name, total_price FROM orders WHERE id = $1", id).
		Scan(&order.ID, &order.CustomerName, &order.TotalPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	rows, err := s.db.Pool.Query(ctx,
		"SELECT menu_item_id, quantity FROM order_items WHERE order_id = $1 ORDER BY position", id)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.MenuItemID, &item.Quantity); err != nil {
			return models.Order{}, err
		}
		order.Items = append(order.Items, item)
	}
	return order, rows.Err()
}

func (s *PostgresOrderStore) Insert(ctx context.Context, order models.Order) (models.Order, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		"INSERT INTO orders (customer_name, total_price) VALUES ($1, $2) RETURNING id",
		order.CustomerName, order.TotalPrice).Scan(&order.ID)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	if err := insertOrderItems(ctx, tx, order.ID, order.Items); err != nil {
		return models.Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Order{}, fmt.Errorf("failed to commit order insert: %w", err)
	}
	return order, nil
}

func (s *PostgresOrderStore) Replace(ctx context.Context, id int, order models.Order) (models.Order, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		"UPDATE orders SET customer_name = $1, total_price = $2 WHERE id = $3",
		order.CustomerName, order.TotalPrice, id)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to replace order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.Order{}, ErrNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM order_items WHERE order_id = $1", id); err != nil {
		return models.Order{}, fmt.Errorf("failed to clear order items: %w", err)
	}
	if err := insertOrderItems(ctx, tx, id, order.Items); err != nil {
		return models.Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Order{}, fmt.Errorf("failed to commit order replace: %w", err)
	}
	order.ID = id
	return order, nil
}

func (s *PostgresOrderStore) Remove(ctx context.Context, id int) error {
	tag, err := s.db.Pool.Exec(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to remove order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func insertOrderItems(ctx context.Context, tx pgx.Tx, orderID int, items []models.OrderItem) error {
	for i, item := range items {
		_, err := tx.Exec(ctx,
			"INSERT INTO order_items (order_id, position, menu_item_id, quantity) VALUES ($1, $2, $3, $4)",
			orderID, i, item.MenuItemID, item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	return nil
}
