package remote

import (
	"context"
	"fmt"
	"strings"

	"freight-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Row is one table row keyed by column name.
type Row map[string]interface{}

// RowClient is a per-table CRUD client. Writable columns are whitelisted at
// construction; anything else in an insert or update payload is rejected
// before any SQL is built, so payload keys can never reach the query text.
type RowClient struct {
	pool    *pgxpool.Pool
	table   string
	columns []string
	orderBy string
}

func NewRowClient(pool *pgxpool.Pool, table string, columns []string, orderBy string) *RowClient {
	return &RowClient{pool: pool, table: table, columns: columns, orderBy: orderBy}
}

// NewShippingRequestClient covers the shipping_requests table.
func NewShippingRequestClient(pool *pgxpool.Pool) *RowClient {
	return NewRowClient(pool, "shipping_requests",
		[]string{"customer_name", "customer_phone", "origin", "destination", "weight", "notes", "status"},
		"created_at DESC")
}

// NewWarehouseItemClient covers the warehouse_items table.
func NewWarehouseItemClient(pool *pgxpool.Pool) *RowClient {
	return NewRowClient(pool, "warehouse_items",
		[]string{"name", "sku", "quantity", "unit", "location", "notes"},
		"name ASC")
}

func (c *RowClient) Table() string {
	return c.table
}

func (c *RowClient) allowed(column string) bool {
	for _, col := range c.columns {
		if col == column {
			return true
		}
	}
	return false
}

// split partitions a payload into whitelisted columns and values, rejecting
// unknown keys.
func (c *RowClient) split(payload Row) ([]string, []interface{}, error) {
	cols := make([]string, 0, len(payload))
	vals := make([]interface{}, 0, len(payload))
	// Iterate the whitelist, not the map, for deterministic column order
	for _, col := range c.columns {
		if val, ok := payload[col]; ok {
			cols = append(cols, col)
			vals = append(vals, val)
		}
	}
	for key := range payload {
		if !c.allowed(key) {
			return nil, nil, models.NewValidationError(key, fmt.Sprintf("unknown column %q", key))
		}
	}
	if len(cols) == 0 {
		return nil, nil, models.NewValidationError("payload", "no writable columns in payload")
	}
	return cols, vals, nil
}

// List returns every row in the table's display order.
func (c *RowClient) List(ctx context.Context) ([]Row, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY %s", c.table, c.orderBy)
	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.table, err)
	}
	defer rows.Close()
	return collectRows(rows)
}

// Get returns a single row by id.
func (c *RowClient) Get(ctx context.Context, id int) (Row, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = $1", c.table)
	rows, err := c.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", c.table, err)
	}
	defer rows.Close()

	result, err := collectRows(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, models.NewNotFoundError(c.table, fmt.Sprintf("%d", id))
	}
	return result[0], nil
}

// Insert adds a row and returns it with generated columns filled in.
func (c *RowClient) Insert(ctx context.Context, payload Row) (Row, error) {
	cols, vals, err := c.split(payload)
	if err != nil {
		return nil, err
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		c.table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	rows, err := c.pool.Query(ctx, query, vals...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", c.table, err)
	}
	defer rows.Close()

	result, err := collectRows(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("insert %s: no row returned", c.table)
	}
	return result[0], nil
}

// Update overwrites the given columns of a row and returns the updated row.
func (c *RowClient) Update(ctx context.Context, id int, payload Row) (Row, error) {
	cols, vals, err := c.split(payload)
	if err != nil {
		return nil, err
	}

	assignments := make([]string, len(cols))
	for i, col := range cols {
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING *",
		c.table, strings.Join(assignments, ", "), len(cols)+1)
	vals = append(vals, id)

	rows, err := c.pool.Query(ctx, query, vals...)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", c.table, err)
	}
	defer rows.Close()

	result, err := collectRows(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, models.NewNotFoundError(c.table, fmt.Sprintf("%d", id))
	}
	return result[0], nil
}

// Delete removes a row by id.
func (c *RowClient) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", c.table)
	tag, err := c.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.table, err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewNotFoundError(c.table, fmt.Sprintf("%d", id))
	}
	return nil
}

func collectRows(rows pgx.Rows) ([]Row, error) {
	fields := rows.FieldDescriptions()
	result := []Row{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(Row, len(fields))
		for i, fd := range fields {
			row[string(fd.Name)] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
