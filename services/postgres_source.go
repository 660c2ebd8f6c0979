package services

import (
	"context"
	"fmt"

	"github.com/RehanAli357/baby-food/models"
	"gorm.io/gorm"
)

const DefaultFoodTable = "food_records"

// PostgresSource reads the dataset from a table, ordered by id. It only ever
// issues a SELECT.
type PostgresSource struct {
	db    *gorm.DB
	table string
}

func NewPostgresSource(db *gorm.DB, table string) *PostgresSource {
	if table == "" {
		table = DefaultFoodTable
	}
	return &PostgresSource{db: db, table: table}
}

func (s *PostgresSource) Name() string { return "postgres:" + s.table }

func (s *PostgresSource) Load(ctx context.Context) ([]models.FoodRecord, []DatasetIssue, error) {
	var rows []models.FoodRow
	if err := s.db.WithContext(ctx).
		Table(s.table).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("db error fetching foods: %w", err)
	}

	foods := make([]models.FoodRecord, 0, len(rows))
	var issues []DatasetIssue
	for _, r := range rows {
		f, fieldIssues := r.ToRecord()
		for _, fi := range fieldIssues {
			issues = append(issues, DatasetIssue{Record: fmt.Sprintf("id %d", r.ID), FieldIssue: fi})
		}
		foods = append(foods, f)
	}
	return foods, issues, nil
}

// Close releases the connection pool. The source is only read once, at
// startup.
func (s *PostgresSource) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
