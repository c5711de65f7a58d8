package store

import (
	"errors"
	"fmt"
	"time"

	"qa-dashboard/internal/apperr"
	"qa-dashboard/internal/model"

	"gorm.io/gorm"
)

// ExecutionStore 执行记录及其结果的读写入口，持有显式的数据库句柄
type ExecutionStore struct {
	db *gorm.DB
}

func NewExecutionStore(db *gorm.DB) *ExecutionStore {
	return &ExecutionStore{db: db}
}

// ExecutionFilter 列表过滤条件，空字段表示不过滤
type ExecutionFilter struct {
	Category string
	Status   string
}

// Create 新建执行记录，初始状态为 running、耗时为 0
func (s *ExecutionStore) Create(category, environment, notes string) (*model.Execution, error) {
	exec := &model.Execution{
		Category:    category,
		Status:      model.StatusRunning,
		Duration:    0,
		Environment: environment,
		Notes:       notes,
	}
	if err := s.db.Create(exec).Error; err != nil {
		return nil, fmt.Errorf("创建执行记录失败: %w", err)
	}
	return exec, nil
}

// List 按创建时间倒序返回执行记录，limit 必须为正数
func (s *ExecutionStore) List(filter ExecutionFilter, limit int) ([]model.Execution, error) {
	if limit <= 0 {
		return nil, apperr.Validationf("limit 必须为正数: %d", limit)
	}

	query := s.db.Preload("Results").Order("created_at DESC").Limit(limit)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var execs []model.Execution
	if err := query.Find(&execs).Error; err != nil {
		return nil, fmt.Errorf("查询执行记录失败: %w", err)
	}
	return execs, nil
}

func (s *ExecutionStore) Get(id uint) (*model.Execution, error) {
	var exec model.Execution
	err := s.db.Preload("Results").First(&exec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("执行记录 %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("查询执行记录失败: %w", err)
	}
	return &exec, nil
}

// ResultsFor 返回执行的全部结果，无结果时返回空切片而非错误
func (s *ExecutionStore) ResultsFor(executionID uint) ([]model.Result, error) {
	var results []model.Result
	if err := s.db.Where("execution_id = ?", executionID).Find(&results).Error; err != nil {
		return nil, fmt.Errorf("查询结果失败: %w", err)
	}
	return results, nil
}

// Finalize 写入结果批次并落终态，单事务保证读者看不到半写状态
func (s *ExecutionStore) Finalize(id uint, results []model.Result, status string, duration int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var exec model.Execution
		err := tx.First(&exec, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("执行记录 %d: %w", id, apperr.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("查询执行记录失败: %w", err)
		}

		if len(results) > 0 {
			for i := range results {
				results[i].ExecutionID = id
			}
			if err := tx.Create(&results).Error; err != nil {
				return fmt.Errorf("写入结果批次失败: %w", err)
			}
		}

		updates := map[string]interface{}{
			"status":     status,
			"duration":   duration,
			"updated_at": time.Now(),
		}
		if err := tx.Model(&model.Execution{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("更新执行状态失败: %w", err)
		}
		return nil
	})
}
