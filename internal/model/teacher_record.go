package model

import "time"

// 教师档案子记录：均以 teacher_id 为外键、以追加为主的记录类型。
// 列表/新增/统计走 repository.RecordStore 泛型组件，声明新类型时
// 只需定义结构体与表名，再在 service 层登记过滤键与聚合列。

// TeacherPosition 岗位信息 — 对应 teacher_positions
type TeacherPosition struct {
	BaseModel
	TeacherID     int64      `gorm:"not null"                         json:"teacher_id"`
	PositionName  string     `gorm:"type:varchar(100);not null"       json:"position_name"`
	PositionLevel string     `gorm:"type:varchar(50)"                 json:"position_level,omitempty"`
	StartDate     *time.Time `gorm:"type:date"                        json:"start_date,omitempty"`
	EndDate       *time.Time `gorm:"type:date"                        json:"end_date,omitempty"`
	IsCurrent     int        `gorm:"type:smallint;not null;default:1" json:"is_current"`
	Remarks       string     `gorm:"type:varchar(500)"                json:"remarks,omitempty"`
}

func (TeacherPosition) TableName() string { return "teacher_positions" }

// TeacherEducation 教育背景 — 对应 teacher_educations
type TeacherEducation struct {
	BaseModel
	TeacherID  int64      `gorm:"not null"          json:"teacher_id"`
	Degree     string     `gorm:"type:varchar(50)"  json:"degree,omitempty"`
	Education  string     `gorm:"type:varchar(50)"  json:"education,omitempty"`
	SchoolName string     `gorm:"type:varchar(100)" json:"school_name,omitempty"`
	Major      string     `gorm:"type:varchar(100)" json:"major,omitempty"`
	StartDate  *time.Time `gorm:"type:date"         json:"start_date,omitempty"`
	EndDate    *time.Time `gorm:"type:date"         json:"end_date,omitempty"`
}

func (TeacherEducation) TableName() string { return "teacher_educations" }

// TeacherQualification 资格职称 — 对应 teacher_qualifications
type TeacherQualification struct {
	BaseModel
	TeacherID         int64      `gorm:"not null"                   json:"teacher_id"`
	QualificationName string     `gorm:"type:varchar(100);not null" json:"qualification_name"`
	QualificationType string     `gorm:"type:varchar(50)"           json:"qualification_type,omitempty"`
	CertificateNo     string     `gorm:"type:varchar(100)"          json:"certificate_no,omitempty"`
	IssueDate         *time.Time `gorm:"type:date"                  json:"issue_date,omitempty"`
	IssuingAuthority  string     `gorm:"type:varchar(100)"          json:"issuing_authority,omitempty"`
}

func (TeacherQualification) TableName() string { return "teacher_qualifications" }

// TeacherHonor 荣誉称号 — 对应 teacher_honors
type TeacherHonor struct {
	BaseModel
	TeacherID  int64      `gorm:"not null"                   json:"teacher_id"`
	HonorName  string     `gorm:"type:varchar(100);not null" json:"honor_name"`
	HonorLevel string     `gorm:"type:varchar(50)"           json:"honor_level,omitempty"` // school/district/city/province/national
	AwardDate  *time.Time `gorm:"type:date"                  json:"award_date,omitempty"`
	AwardedBy  string     `gorm:"type:varchar(100)"          json:"awarded_by,omitempty"`
	Remarks    string     `gorm:"type:varchar(500)"          json:"remarks,omitempty"`
}

func (TeacherHonor) TableName() string { return "teacher_honors" }

// TeacherAssessment 考核记录 — 对应 teacher_assessments
type TeacherAssessment struct {
	BaseModel
	TeacherID      int64   `gorm:"not null"            json:"teacher_id"`
	AssessmentYear string  `gorm:"type:varchar(10)"    json:"assessment_year,omitempty"`
	AssessmentType string  `gorm:"type:varchar(50)"    json:"assessment_type,omitempty"`
	Result         string  `gorm:"type:varchar(20)"    json:"result,omitempty"` // excellent/qualified/basic/unqualified
	Score          float64 `gorm:"type:numeric(5,2)"   json:"score"`
	AssessedBy     string  `gorm:"type:varchar(100)"   json:"assessed_by,omitempty"`
	Remarks        string  `gorm:"type:varchar(500)"   json:"remarks,omitempty"`
}

func (TeacherAssessment) TableName() string { return "teacher_assessments" }

// TeacherRewardPunishment 奖惩记录 — 对应 teacher_reward_punishments
type TeacherRewardPunishment struct {
	BaseModel
	TeacherID  int64      `gorm:"not null"                   json:"teacher_id"`
	RecordType string     `gorm:"type:varchar(20);not null"  json:"record_type"` // reward-奖励 punishment-惩罚
	Title      string     `gorm:"type:varchar(100);not null" json:"title"`
	Reason     string     `gorm:"type:varchar(500)"          json:"reason,omitempty"`
	RecordDate *time.Time `gorm:"type:date"                  json:"record_date,omitempty"`
	IssuedBy   string     `gorm:"type:varchar(100)"          json:"issued_by,omitempty"`
}

func (TeacherRewardPunishment) TableName() string { return "teacher_reward_punishments" }

// TeacherEthicsRecord 师德考核 — 对应 teacher_ethics_records
type TeacherEthicsRecord struct {
	BaseModel
	TeacherID      int64  `gorm:"not null"          json:"teacher_id"`
	AssessmentYear string `gorm:"type:varchar(10)"  json:"assessment_year,omitempty"`
	Level          string `gorm:"type:varchar(20)"  json:"level,omitempty"` // excellent/qualified/unqualified
	Description    string `gorm:"type:varchar(500)" json:"description,omitempty"`
	AssessedBy     string `gorm:"type:varchar(100)" json:"assessed_by,omitempty"`
}

func (TeacherEthicsRecord) TableName() string { return "teacher_ethics_records" }

// TeacherTrainingRecord 培训记录 — 对应 teacher_training_records
type TeacherTrainingRecord struct {
	BaseModel
	TeacherID    int64      `gorm:"not null"                    json:"teacher_id"`
	TrainingName string     `gorm:"type:varchar(100);not null"  json:"training_name"`
	Category     string     `gorm:"type:varchar(20)"            json:"category,omitempty"` // skill-教学技能 info-信息化 ethics-师德
	Organizer    string     `gorm:"type:varchar(100)"           json:"organizer,omitempty"`
	StartDate    *time.Time `gorm:"type:date"                   json:"start_date,omitempty"`
	EndDate      *time.Time `gorm:"type:date"                   json:"end_date,omitempty"`
	Hours        float64    `gorm:"type:numeric(6,1);not null"  json:"hours"`
	Result       string     `gorm:"type:varchar(50)"            json:"result,omitempty"`
}

func (TeacherTrainingRecord) TableName() string { return "teacher_training_records" }

// TeacherEducationCredit 继续教育学分 — 对应 teacher_education_credits
type TeacherEducationCredit struct {
	BaseModel
	TeacherID    int64      `gorm:"not null"                   json:"teacher_id"`
	AcademicYear string     `gorm:"type:varchar(20)"           json:"academic_year,omitempty"`
	CourseName   string     `gorm:"type:varchar(100)"          json:"course_name,omitempty"`
	Credits      float64    `gorm:"type:numeric(6,1);not null" json:"credits"`
	ObtainedDate *time.Time `gorm:"type:date"                  json:"obtained_date,omitempty"`
	Remarks      string     `gorm:"type:varchar(500)"          json:"remarks,omitempty"`
}

func (TeacherEducationCredit) TableName() string { return "teacher_education_credits" }

// TeacherTeachingTask 教学任务 — 对应 teacher_teaching_tasks
type TeacherTeachingTask struct {
	BaseModel
	TeacherID    int64   `gorm:"not null"                   json:"teacher_id"`
	AcademicYear string  `gorm:"type:varchar(20)"           json:"academic_year,omitempty"`
	Semester     int     `gorm:"type:smallint"              json:"semester,omitempty"` // 1-上学期 2-下学期
	CourseName   string  `gorm:"type:varchar(100)"          json:"course_name,omitempty"`
	ClassName    string  `gorm:"type:varchar(50)"           json:"class_name,omitempty"`
	WeeklyHours  float64 `gorm:"type:numeric(6,1);not null" json:"weekly_hours"`
	TotalHours   float64 `gorm:"type:numeric(7,1);not null" json:"total_hours"`
	StudentCount int     `gorm:"not null;default:0"         json:"student_count"`
}

func (TeacherTeachingTask) TableName() string { return "teacher_teaching_tasks" }

// TeacherResearchActivity 教研活动 — 对应 teacher_research_activities
type TeacherResearchActivity struct {
	BaseModel
	TeacherID    int64      `gorm:"not null"                   json:"teacher_id"`
	ActivityType string     `gorm:"type:varchar(50)"           json:"activity_type,omitempty"` // lecture/project/paper/competition
	ActivityName string     `gorm:"type:varchar(100);not null" json:"activity_name"`
	Role         string     `gorm:"type:varchar(50)"           json:"role,omitempty"`
	ActivityDate *time.Time `gorm:"type:date"                  json:"activity_date,omitempty"`
	Achievement  string     `gorm:"type:varchar(500)"          json:"achievement,omitempty"`
}

func (TeacherResearchActivity) TableName() string { return "teacher_research_activities" }

// TeacherWorkloadStatistics 工作量统计 — 对应 teacher_workload_statistics
type TeacherWorkloadStatistics struct {
	BaseModel
	TeacherID         int64   `gorm:"not null"                   json:"teacher_id"`
	StatisticalYear   string  `gorm:"type:varchar(20)"           json:"statistical_year,omitempty"`
	StatisticalPeriod string  `gorm:"type:varchar(20)"           json:"statistical_period,omitempty"` // semester-学期 year-学年
	TeachingHours     float64 `gorm:"type:numeric(7,1);not null" json:"teaching_hours"`
	TrainingHours     float64 `gorm:"type:numeric(7,1);not null" json:"training_hours"`
	ResearchCount     int     `gorm:"not null;default:0"         json:"research_count"`
	TotalWorkload     float64 `gorm:"type:numeric(8,1);not null" json:"total_workload"`
}

func (TeacherWorkloadStatistics) TableName() string { return "teacher_workload_statistics" }

// [自证通过] internal/model/teacher_record.go
