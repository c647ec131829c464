package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/smallbiznis/ispdesk/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

var naming = schema.NamingStrategy{}

// ColumnName maps a document field name to its SQL column.
func ColumnName(field string) string {
	return naming.ColumnName("", field)
}

type gormCollection[T Document] struct {
	db   *gorm.DB
	name string
}

// NewGormCollection stores T in the table gorm derives from the model.
func NewGormCollection[T Document](conn *gorm.DB, name string) Collection[T] {
	return &gormCollection[T]{db: conn, name: name}
}

func (c *gormCollection[T]) Name() string {
	return c.name
}

func (c *gormCollection[T]) List(ctx context.Context, opts ...QueryOption) ([]T, error) {
	q := BuildQuery(opts...)
	stmt := c.db.WithContext(ctx).Model(new(T))
	for _, f := range q.Filters {
		stmt = stmt.Where(clause.Eq{Column: clause.Column{Name: ColumnName(f.Field)}, Value: f.Value})
	}
	for _, o := range q.Orders {
		stmt = stmt.Order(clause.OrderByColumn{
			Column: clause.Column{Name: ColumnName(o.Field)},
			Desc:   o.Direction == Desc,
		})
	}
	if q.Limit > 0 {
		stmt = stmt.Limit(q.Limit)
	}

	var result []T
	if err := stmt.Find(&result).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	return result, nil
}

func (c *gormCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var result T
	err := c.db.WithContext(ctx).Where("id = ?", id).Take(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, ErrNotFound
		}
		return result, fmt.Errorf("get %s/%s: %w", c.name, id, err)
	}
	return result, nil
}

func (c *gormCollection[T]) Create(ctx context.Context, doc T) error {
	if err := c.db.WithContext(ctx).Create(&doc).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create %s: %w", c.name, err)
	}
	return nil
}

func (c *gormCollection[T]) Update(ctx context.Context, id string, fields Fields) error {
	if len(fields) == 0 {
		_, err := c.Get(ctx, id)
		return err
	}

	updates := make(map[string]any, len(fields))
	for key, value := range fields {
		if key == "id" {
			continue
		}
		updates[ColumnName(key)] = value
	}

	res := c.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update %s/%s: %w", c.name, id, res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports zero affected rows when values did not change.
		if _, err := c.Get(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (c *gormCollection[T]) Delete(ctx context.Context, id string) error {
	res := c.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("delete %s/%s: %w", c.name, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
