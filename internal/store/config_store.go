package store

import (
	"errors"
	"fmt"

	"qa-dashboard/internal/apperr"
	"qa-dashboard/internal/model"

	"gorm.io/gorm"
)

// ConfigStore 单例配置记录的读写
type ConfigStore struct {
	db *gorm.DB
}

func NewConfigStore(db *gorm.DB) *ConfigStore {
	return &ConfigStore{db: db}
}

// ConfigurationUpdate 部分更新，nil 字段保持原值
type ConfigurationUpdate struct {
	Name        *string                `json:"name"`
	Version     *string                `json:"version"`
	Environment *string                `json:"environment"`
	Settings    map[string]interface{} `json:"settings"`
}

func (s *ConfigStore) Get() (*model.Configuration, error) {
	var conf model.Configuration
	err := s.db.First(&conf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("系统配置: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("查询配置失败: %w", err)
	}
	return &conf, nil
}

// Update 只应用提供的字段，settings 做浅合并而非整体替换
func (s *ConfigStore) Update(upd ConfigurationUpdate) (*model.Configuration, error) {
	conf, err := s.Get()
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		conf.Name = *upd.Name
	}
	if upd.Version != nil {
		conf.Version = *upd.Version
	}
	if upd.Environment != nil {
		conf.Environment = *upd.Environment
	}
	if upd.Settings != nil {
		merged := conf.SettingsMap()
		for k, v := range upd.Settings {
			merged[k] = v
		}
		conf.SetSettingsMap(merged)
	}

	if err := s.db.Save(conf).Error; err != nil {
		return nil, fmt.Errorf("更新配置失败: %w", err)
	}
	return conf, nil
}
