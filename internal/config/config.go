package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Runner   RunnerConfig   `yaml:"runner"`
	Sampler  SamplerConfig  `yaml:"sampler"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	// driver: mysql / sqlite
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	Charset  string `yaml:"charset"`
	// sqlite 文件路径，":memory:" 表示内存库
	Path string `yaml:"path"`
}

type RunnerConfig struct {
	// 模拟执行耗时区间（秒）
	WaitMinSeconds int `yaml:"wait_min_seconds"`
	WaitMaxSeconds int `yaml:"wait_max_seconds"`
	// 随机种子，0 表示按时间取
	Seed int64 `yaml:"seed"`
}

type SamplerConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

func LoadConfig(path string) (*Config, error) {
	// .env 可选，用于本地覆盖数据库凭据
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	config.applyEnv()
	config.applyDefaults()
	return &config, nil
}

// applyEnv 环境变量优先于配置文件
func (c *Config) applyEnv() {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Database.Port = p
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.DBName = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Database.Path = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Charset == "" {
		c.Database.Charset = "utf8mb4"
	}
	if c.Database.Path == "" {
		c.Database.Path = "qa_dashboard.db"
	}
	if c.Runner.WaitMinSeconds <= 0 {
		c.Runner.WaitMinSeconds = 5
	}
	if c.Runner.WaitMaxSeconds < c.Runner.WaitMinSeconds {
		c.Runner.WaitMaxSeconds = 15
	}
	if c.Sampler.TimeoutSeconds <= 0 {
		c.Sampler.TimeoutSeconds = 3
	}
}
