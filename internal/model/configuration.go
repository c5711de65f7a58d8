package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Configuration 系统配置（逻辑上仅一条有效记录）
type Configuration struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Version     string `gorm:"type:varchar(20);not null" json:"version"`
	Environment string `gorm:"type:varchar(50);not null" json:"environment"`

	// 自由键值设置，JSON 文本存储
	Settings string `gorm:"type:text" json:"-"`
}

// SettingsMap 解析设置为字典，解析失败返回空字典
func (c *Configuration) SettingsMap() map[string]interface{} {
	if c.Settings == "" {
		return map[string]interface{}{}
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(c.Settings), &m); err != nil {
		return map[string]interface{}{}
	}
	return m
}

func (c *Configuration) SetSettingsMap(m map[string]interface{}) {
	b, err := json.Marshal(m)
	if err != nil {
		return
	}
	c.Settings = string(b)
}

// MarshalJSON 把设置序列化为内嵌字典而非原始字符串
func (c Configuration) MarshalJSON() ([]byte, error) {
	type alias Configuration
	return json.Marshal(struct {
		alias
		Settings map[string]interface{} `json:"settings"`
	}{alias(c), c.SettingsMap()})
}
