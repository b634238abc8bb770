package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// 迁移脚本随二进制一起发布，唯一索引等约束不依赖外部文件
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 把数据库结构升级到最新版本。
// 已是最新版本时不做任何事，可在每次启动时安全调用。
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("读取内嵌迁移脚本失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("初始化迁移驱动失败: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("创建迁移器失败: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("应用迁移失败: %w", err)
	}

	version, dirty, verr := migrator.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("查询迁移版本失败: %w", verr)
	}
	if dirty {
		// dirty 说明上一次迁移中断，需要人工介入修复后重试
		logger.Warn("数据库结构处于 dirty 状态", zap.Uint("version", version))
		return nil
	}

	logger.Info("数据库结构已就绪", zap.Uint("version", version))
	return nil
}
