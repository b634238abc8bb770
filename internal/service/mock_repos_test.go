package service

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"

	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/model"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	nextID    int64
	users     map[int64]*model.User
	byName    map[string]*model.User
	userRoles map[int64]map[int64]bool
	perms     map[int64][]string
	roles     *mockRoleRepo
}

func newMockUserRepo(roles *mockRoleRepo) *mockUserRepo {
	return &mockUserRepo{
		users:     make(map[int64]*model.User),
		byName:    make(map[string]*model.User),
		userRoles: make(map[int64]map[int64]bool),
		perms:     make(map[int64][]string),
		roles:     roles,
	}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if _, ok := m.byName[user.Username]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	m.byName[user.Username] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := m.byName[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.ID] = user
	m.byName[user.Username] = user
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastLoginAt = &at
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockUserRepo) AssignRole(_ context.Context, userID, roleID int64) error {
	if m.userRoles[userID] == nil {
		m.userRoles[userID] = make(map[int64]bool)
	}
	m.userRoles[userID][roleID] = true
	return nil
}

func (m *mockUserRepo) RoleCodesByUserID(_ context.Context, userID int64) ([]string, error) {
	var codes []string
	for roleID := range m.userRoles[userID] {
		if r, ok := m.roles.byID[roleID]; ok {
			codes = append(codes, r.RoleCode)
		}
	}
	sort.Strings(codes)
	return codes, nil
}

func (m *mockUserRepo) PermissionCodesByUserID(_ context.Context, userID int64) ([]string, error) {
	return m.perms[userID], nil
}

// ── Mock RoleRepository ──

type mockRoleRepo struct {
	nextID int64
	byID   map[int64]*model.Role
	byCode map[string]*model.Role
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{
		byID:   make(map[int64]*model.Role),
		byCode: make(map[string]*model.Role),
	}
}

func (m *mockRoleRepo) GetByCode(_ context.Context, code string) (*model.Role, error) {
	if r, ok := m.byCode[code]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) EnsureByCode(_ context.Context, code, name, description string) (*model.Role, error) {
	if r, ok := m.byCode[code]; ok {
		return r, nil
	}
	m.nextID++
	r := &model.Role{RoleCode: code, RoleName: name, Description: description}
	r.ID = m.nextID
	m.byID[r.ID] = r
	m.byCode[code] = r
	return r, nil
}

func (m *mockRoleRepo) List(_ context.Context) ([]model.Role, error) {
	var result []model.Role
	for _, r := range m.byID {
		result = append(result, *r)
	}
	return result, nil
}

// ── Mock SchoolRepository ──

type mockSchoolRepo struct {
	nextID int64
	byID   map[int64]*model.School
	byName map[string]*model.School
}

func newMockSchoolRepo() *mockSchoolRepo {
	return &mockSchoolRepo{
		byID:   make(map[int64]*model.School),
		byName: make(map[string]*model.School),
	}
}

func (m *mockSchoolRepo) Create(_ context.Context, school *model.School) error {
	if _, ok := m.byName[school.SchoolName]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.nextID++
	school.ID = m.nextID
	m.byID[school.ID] = school
	m.byName[school.SchoolName] = school
	return nil
}

func (m *mockSchoolRepo) GetByID(_ context.Context, id int64) (*model.School, error) {
	if s, ok := m.byID[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolRepo) GetByName(_ context.Context, name string) (*model.School, error) {
	if s, ok := m.byName[name]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolRepo) EnsureByName(ctx context.Context, school *model.School) (*model.School, error) {
	if existing, ok := m.byName[school.SchoolName]; ok {
		return existing, nil
	}
	if err := m.Create(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

func (m *mockSchoolRepo) List(_ context.Context) ([]model.School, error) {
	var result []model.School
	for _, s := range m.byID {
		result = append(result, *s)
	}
	return result, nil
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	nextID int64
	byID   map[int64]*model.Class
	byKey  map[string]*model.Class // "schoolID|className"
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{
		byID:  make(map[int64]*model.Class),
		byKey: make(map[string]*model.Class),
	}
}

func classKey(schoolID int64, name string) string {
	return fmt.Sprintf("%d|%s", schoolID, name)
}

func (m *mockClassRepo) GetByID(_ context.Context, id int64) (*model.Class, error) {
	if c, ok := m.byID[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) GetByName(_ context.Context, schoolID int64, name string) (*model.Class, error) {
	if c, ok := m.byKey[classKey(schoolID, name)]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) EnsureByName(_ context.Context, class *model.Class) (*model.Class, error) {
	key := classKey(class.SchoolID, class.ClassName)
	if existing, ok := m.byKey[key]; ok {
		return existing, nil
	}
	m.nextID++
	class.ID = m.nextID
	m.byID[class.ID] = class
	m.byKey[key] = class
	return class, nil
}

func (m *mockClassRepo) ListBySchool(_ context.Context, schoolID int64) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.byID {
		if c.SchoolID == schoolID {
			result = append(result, *c)
		}
	}
	return result, nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	nextID   int64
	byUserID map[int64]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{byUserID: make(map[int64]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	m.nextID++
	student.ID = m.nextID
	m.byUserID[student.UserID] = student
	return nil
}

func (m *mockStudentRepo) GetByUserID(_ context.Context, userID int64) (*model.Student, error) {
	if s, ok := m.byUserID[userID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) ListByClass(_ context.Context, classID int64) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.byUserID {
		if s.ClassID != nil && *s.ClassID == classID {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	nextID   int64
	byID     map[int64]*model.Teacher
	byUserID map[int64]*model.Teacher
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{
		byID:     make(map[int64]*model.Teacher),
		byUserID: make(map[int64]*model.Teacher),
	}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	m.nextID++
	teacher.ID = m.nextID
	m.byID[teacher.ID] = teacher
	m.byUserID[teacher.UserID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id int64) (*model.Teacher, error) {
	if t, ok := m.byID[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByUserID(_ context.Context, userID int64) (*model.Teacher, error) {
	if t, ok := m.byUserID[userID]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	if _, ok := m.byID[teacher.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.byID[teacher.ID] = teacher
	m.byUserID[teacher.UserID] = teacher
	return nil
}

// ── Mock TeacherBasicRepository ──

type mockTeacherBasicRepo struct {
	nextID      int64
	byID        map[int64]*model.TeacherBasic
	byTeacherID map[int64]*model.TeacherBasic
}

func newMockTeacherBasicRepo() *mockTeacherBasicRepo {
	return &mockTeacherBasicRepo{
		byID:        make(map[int64]*model.TeacherBasic),
		byTeacherID: make(map[int64]*model.TeacherBasic),
	}
}

func (m *mockTeacherBasicRepo) Create(_ context.Context, basic *model.TeacherBasic) error {
	if _, ok := m.byTeacherID[basic.TeacherID]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.nextID++
	basic.ID = m.nextID
	m.byID[basic.ID] = basic
	m.byTeacherID[basic.TeacherID] = basic
	return nil
}

func (m *mockTeacherBasicRepo) GetByID(_ context.Context, id int64) (*model.TeacherBasic, error) {
	if b, ok := m.byID[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherBasicRepo) GetByTeacherID(_ context.Context, teacherID int64) (*model.TeacherBasic, error) {
	if b, ok := m.byTeacherID[teacherID]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherBasicRepo) Update(_ context.Context, basic *model.TeacherBasic) error {
	if _, ok := m.byID[basic.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.byID[basic.ID] = basic
	m.byTeacherID[basic.TeacherID] = basic
	return nil
}

func (m *mockTeacherBasicRepo) Delete(_ context.Context, id int64) error {
	b, ok := m.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.byID, id)
	delete(m.byTeacherID, b.TeacherID)
	return nil
}

func (m *mockTeacherBasicRepo) List(_ context.Context, filters *repository.TeacherBasicFilters, offset, limit int) ([]model.TeacherBasic, int64, error) {
	var matched []model.TeacherBasic
	for _, b := range m.byID {
		if filters != nil {
			if filters.SchoolID != nil && (b.SchoolID == nil || *b.SchoolID != *filters.SchoolID) {
				continue
			}
			if filters.Keyword != "" && !strings.Contains(b.TeacherName, filters.Keyword) {
				continue
			}
		}
		matched = append(matched, *b)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// ── Mock RecordStore ──
//
// 列访问通过反射完成：列名按 GORM 默认规则由字段名转 snake_case 得到。

type mockRecordStore[T any] struct {
	nextID  int64
	records []*T
}

func newMockRecordStore[T any]() *mockRecordStore[T] {
	return &mockRecordStore[T]{}
}

func camelToSnake(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// 大写连续串视为一个词 (ID → id, TeacherID → teacher_id)
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && !unicode.IsUpper(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func fieldByColumn(v reflect.Value, column string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			if fv, ok := fieldByColumn(v.Field(i), column); ok {
				return fv, true
			}
			continue
		}
		col := camelToSnake(f.Name)
		if tag := f.Tag.Get("gorm"); strings.Contains(tag, "column:") {
			part := tag[strings.Index(tag, "column:")+len("column:"):]
			if idx := strings.Index(part, ";"); idx >= 0 {
				part = part[:idx]
			}
			col = part
		}
		if col == column {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func columnValue[T any](rec *T, column string) interface{} {
	fv, ok := fieldByColumn(reflect.ValueOf(rec).Elem(), column)
	if !ok {
		return nil
	}
	return fv.Interface()
}

func (m *mockRecordStore[T]) teacherIDOf(rec *T) int64 {
	v, _ := columnValue(rec, "teacher_id").(int64)
	return v
}

func (m *mockRecordStore[T]) List(_ context.Context, teacherID int64) ([]T, error) {
	var result []T
	for _, rec := range m.records {
		if m.teacherIDOf(rec) == teacherID {
			result = append(result, *rec)
		}
	}
	return result, nil
}

func (m *mockRecordStore[T]) ListWhere(_ context.Context, teacherID int64, conds map[string]interface{}) ([]T, error) {
	var result []T
	for _, rec := range m.records {
		if m.teacherIDOf(rec) != teacherID {
			continue
		}
		match := true
		for column, want := range conds {
			if fmt.Sprint(columnValue(rec, column)) != fmt.Sprint(want) {
				match = false
				break
			}
		}
		if match {
			result = append(result, *rec)
		}
	}
	return result, nil
}

func (m *mockRecordStore[T]) ListRecent(ctx context.Context, teacherID int64, orderColumn string, limit int) ([]T, error) {
	result, err := m.List(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool {
		return fmt.Sprint(columnValue(&result[i], orderColumn)) > fmt.Sprint(columnValue(&result[j], orderColumn))
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockRecordStore[T]) Add(_ context.Context, record *T) error {
	m.nextID++
	if fv, ok := fieldByColumn(reflect.ValueOf(record).Elem(), "id"); ok && fv.CanSet() {
		fv.SetInt(m.nextID)
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockRecordStore[T]) UpdateByID(_ context.Context, record *T) error {
	id, _ := columnValue(record, "id").(int64)
	for i, rec := range m.records {
		recID, _ := columnValue(rec, "id").(int64)
		if recID == id {
			m.records[i] = record
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockRecordStore[T]) RemoveByID(_ context.Context, id int64) error {
	for i, rec := range m.records {
		recID, _ := columnValue(rec, "id").(int64)
		if recID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockRecordStore[T]) Count(_ context.Context, teacherID int64) (int64, error) {
	var count int64
	for _, rec := range m.records {
		if m.teacherIDOf(rec) == teacherID {
			count++
		}
	}
	return count, nil
}

func (m *mockRecordStore[T]) CountBy(_ context.Context, teacherID int64, column string) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, rec := range m.records {
		if m.teacherIDOf(rec) == teacherID {
			result[fmt.Sprint(columnValue(rec, column))]++
		}
	}
	return result, nil
}

func (m *mockRecordStore[T]) SumBy(_ context.Context, teacherID int64, sumColumn, groupColumn string) (float64, map[string]float64, error) {
	var total float64
	grouped := make(map[string]float64)
	for _, rec := range m.records {
		if m.teacherIDOf(rec) != teacherID {
			continue
		}
		var v float64
		switch n := columnValue(rec, sumColumn).(type) {
		case float64:
			v = n
		case int:
			v = float64(n)
		case int64:
			v = float64(n)
		}
		total += v
		if groupColumn != "" {
			grouped[fmt.Sprint(columnValue(rec, groupColumn))] += v
		}
	}
	return total, grouped, nil
}

// ── 聚合构建 ──

type mockRepos struct {
	repo     *repository.Repository
	users    *mockUserRepo
	roles    *mockRoleRepo
	schools  *mockSchoolRepo
	classes  *mockClassRepo
	students *mockStudentRepo
	teachers *mockTeacherRepo
	basics   *mockTeacherBasicRepo
}

func newMockRepos() *mockRepos {
	roles := newMockRoleRepo()
	m := &mockRepos{
		users:    newMockUserRepo(roles),
		roles:    roles,
		schools:  newMockSchoolRepo(),
		classes:  newMockClassRepo(),
		students: newMockStudentRepo(),
		teachers: newMockTeacherRepo(),
		basics:   newMockTeacherBasicRepo(),
	}
	repo := &repository.Repository{
		User:         m.users,
		Role:         m.roles,
		School:       m.schools,
		Class:        m.classes,
		Student:      m.students,
		Teacher:      m.teachers,
		TeacherBasic: m.basics,

		Position:         newMockRecordStore[model.TeacherPosition](),
		Education:        newMockRecordStore[model.TeacherEducation](),
		Qualification:    newMockRecordStore[model.TeacherQualification](),
		Honor:            newMockRecordStore[model.TeacherHonor](),
		Assessment:       newMockRecordStore[model.TeacherAssessment](),
		RewardPunishment: newMockRecordStore[model.TeacherRewardPunishment](),
		Ethics:           newMockRecordStore[model.TeacherEthicsRecord](),
		Training:         newMockRecordStore[model.TeacherTrainingRecord](),
		Credit:           newMockRecordStore[model.TeacherEducationCredit](),
		TeachingTask:     newMockRecordStore[model.TeacherTeachingTask](),
		Research:         newMockRecordStore[model.TeacherResearchActivity](),
		Workload:         newMockRecordStore[model.TeacherWorkloadStatistics](),
	}
	// 测试中事务退化为直接执行
	repo.Atomic = func(ctx context.Context, fn func(repo *repository.Repository) error) error {
		return fn(repo)
	}
	m.repo = repo
	return m
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	entries map[string]time.Duration
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{entries: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.entries[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := m.entries[jti]
	return ok, nil
}
