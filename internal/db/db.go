package db

import (
	"fmt"
	"math/rand"
	"time"

	"qa-dashboard/internal/config"
	"qa-dashboard/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open 按配置选择驱动建立连接并自动迁移
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.DBName,
			cfg.Database.Charset,
		)
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.Path)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Database.Driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&model.Execution{},
		&model.Result{},
		&model.SystemSample{},
		&model.Configuration{},
		&model.Pipeline{},
	); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

// Seed 首次启动时写入演示数据；已有执行记录则直接返回
func Seed(gdb *gorm.DB, logger zerolog.Logger) error {
	var count int64
	if err := gdb.Model(&model.Execution{}).Count(&count).Error; err != nil {
		return fmt.Errorf("检查演示数据失败: %w", err)
	}
	if count > 0 {
		return nil
	}

	logger.Info().Msg("初始化演示数据")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	categories := []string{
		model.CategoryWeb, model.CategoryAPI,
		model.CategoryPerformance, model.CategoryIntegration,
	}
	statuses := []string{
		model.StatusSuccess, model.StatusFailure,
		model.StatusRunning, model.StatusPending,
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < 20; i++ {
			exec := model.Execution{
				Category:    categories[rng.Intn(len(categories))],
				Status:      statuses[rng.Intn(len(statuses))],
				Environment: "development",
				Notes:       fmt.Sprintf("Test execution %d", i+1),
			}
			// 终态才有耗时和结果，running/pending 保持 duration=0
			if exec.Terminal() {
				exec.Duration = 30 + rng.Intn(271)
			}
			if err := tx.Create(&exec).Error; err != nil {
				return err
			}
			if !exec.Terminal() {
				continue
			}

			n := 5 + rng.Intn(11)
			results := make([]model.Result, 0, n)
			for j := 0; j < n; j++ {
				status := []string{model.ResultPassed, model.ResultFailed, model.ResultSkipped}[rng.Intn(3)]
				r := model.Result{
					ExecutionID:   exec.ID,
					TestName:      fmt.Sprintf("Test %d - %s", j+1, exec.Category),
					Status:        status,
					ExecutionTime: 1 + rng.Float64()*29,
				}
				if status != model.ResultPassed {
					r.ErrorMessage = "Validation error"
				}
				results = append(results, r)
			}
			if err := tx.Create(&results).Error; err != nil {
				return err
			}
		}

		conf := model.Configuration{
			Name:        "QA Dashboard",
			Version:     "1.0.0",
			Environment: "development",
		}
		conf.SetSettingsMap(map[string]interface{}{
			"refresh_interval":    30,
			"log_retention_days":  30,
			"email_notifications": true,
			"auto_backup":         true,
		})
		return tx.Create(&conf).Error
	})
}
