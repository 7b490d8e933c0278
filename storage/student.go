package storage

import (
	"time"

	"github.com/trezcool/hatari/core/student"
	"github.com/trezcool/hatari/storage/kv"
)

type studentRepository struct {
	store kv.Store
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(store kv.Store) student.Repository {
	return &studentRepository{store: store}
}

func studentKeyOf(s student.Student) string { return s.ID }

func attendanceKeyOf(r student.AttendanceRecord) string { return r.ID }

func gradeKeyOf(r student.GradeRecord) string { return r.ID }

func behaviorKeyOf(r student.BehaviorRecord) string { return r.ID }

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	return getList[student.Student](repo.store, kv.KeyStudents)
}

func (repo *studentRepository) GetStudentByID(id string) (student.Student, error) {
	students, err := repo.QueryAllStudents()
	if err != nil {
		return student.Student{}, err
	}
	for _, st := range students {
		if st.ID == id {
			return st, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) SaveStudent(st student.Student) error {
	students, err := repo.QueryAllStudents()
	if err != nil {
		return err
	}
	return repo.store.Put(kv.KeyStudents, upsertByKey(students, studentKeyOf, st))
}

func (repo *studentRepository) SaveStudents(batch []student.Student) error {
	students, err := repo.QueryAllStudents()
	if err != nil {
		return err
	}
	return repo.store.Put(kv.KeyStudents, upsertAllByKey(students, studentKeyOf, batch))
}

func (repo *studentRepository) UpdateStudent(id string, up student.UpdateStudent) (student.Student, error) {
	students, err := repo.QueryAllStudents()
	if err != nil {
		return student.Student{}, err
	}
	for i := range students {
		if students[i].ID != id {
			continue
		}

		// only merge set fields
		st := &students[i]
		if up.Name != nil {
			st.Name = *up.Name
		}
		if up.Email != nil {
			st.Email = *up.Email
		}
		if up.Grade != nil {
			st.Grade = *up.Grade
		}
		if up.AttendanceRate != nil {
			st.AttendanceRate = *up.AttendanceRate
		}
		if up.CurrentGPA != nil {
			st.CurrentGPA = *up.CurrentGPA
		}
		if up.BehaviorScore != nil {
			st.BehaviorScore = *up.BehaviorScore
		}
		if up.RiskScore != nil {
			st.RiskScore = *up.RiskScore
		}
		if up.RiskLevel != nil {
			st.RiskLevel = *up.RiskLevel
		}
		st.LastUpdated = time.Now().UTC()

		if err := repo.store.Put(kv.KeyStudents, students); err != nil {
			return student.Student{}, err
		}
		return *st, nil
	}
	return student.Student{}, student.ErrNotFound
}

// DeleteStudent removes the student record only; related attendance, grade
// and behavior records are left in place.
func (repo *studentRepository) DeleteStudent(id string) error {
	students, err := repo.QueryAllStudents()
	if err != nil {
		return err
	}
	kept := make([]student.Student, 0, len(students))
	for _, st := range students {
		if st.ID != id {
			kept = append(kept, st)
		}
	}
	return repo.store.Put(kv.KeyStudents, kept)
}

func (repo *studentRepository) QueryAttendanceRecords(studentID string) ([]student.AttendanceRecord, error) {
	records, err := getList[student.AttendanceRecord](repo.store, kv.KeyAttendance)
	if err != nil || studentID == "" {
		return records, err
	}
	matched := make([]student.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if r.StudentID == studentID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (repo *studentRepository) SaveAttendanceRecord(r student.AttendanceRecord) error {
	records, err := getList[student.AttendanceRecord](repo.store, kv.KeyAttendance)
	if err != nil {
		return err
	}
	return repo.store.Put(kv.KeyAttendance, upsertByKey(records, attendanceKeyOf, r))
}

func (repo *studentRepository) SaveAttendanceRecords(batch []student.AttendanceRecord) error {
	records, err := getList[student.AttendanceRecord](repo.store, kv.KeyAttendance)
	if err != nil {
		return err
	}
	return repo.store.Put(kv.KeyAttendance, upsertAllByKey(records, attendanceKeyOf, batch))
}

func (repo *studentRepository) QueryGradeRecords(studentID string) ([]student.GradeRecord, error) {
	records, err := getList[student.GradeRecord](repo.store, kv.KeyGrades)
	if err != nil || studentID == "" {
		return records, err
	}
	matched := make([]student.GradeRecord, 0, len(records))
	for _, r := range records {
		if r.StudentID == studentID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (repo *studentRepository) SaveGradeRecord(r student.GradeRecord) error {
	records, err := getList[student.GradeRecord](repo.store, kv.KeyGrades)
	if err != nil {
		return err
	}
	return repo.store.Put(kv.KeyGrades, upsertByKey(records, gradeKeyOf, r))
}

func (repo *studentRepository) SaveGradeRecords(batch []student.GradeRecord) error {
	records, err := getList[student.GradeRecord](repo.store, kv.KeyGrades)
	if err != nil {
		return err
	}
	return repo.store.Put(kv.KeyGrades, upsertAllByKey(records, gradeKeyOf, batch))
}

func (repo *studentRepository) QueryBehaviorRecords(studentID string) ([]student.BehaviorRecord, error) {
	records, err := getList[student.BehaviorRecord](repo.store, kv.KeyBehavior)
	if err != nil || studentID == "" {
		return records, err
	}
	matched := make([]student.BehaviorRecord, 0, len(records))
	for _, r := range records {
		if r.StudentID == studentID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (repo *studentRepository) SaveBehaviorRecord(r student.BehaviorRecord) error {
	records, err := getList[student.BehaviorRecord](repo.store, kv.KeyBehavior)
	if err != nil {
		return err
	}
	return repo.store.Put(kv.KeyBehavior, upsertByKey(records, behaviorKeyOf, r))
}

func (repo *studentRepository) SaveBehaviorRecords(batch []student.BehaviorRecord) error {
	records, err := getList[student.BehaviorRecord](repo.store, kv.KeyBehavior)
	if err != nil {
		return err
	}
	return repo.store.Put(kv.KeyBehavior, upsertAllByKey(records, behaviorKeyOf, batch))
}
