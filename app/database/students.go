package database

import (
	"database/sql"
	"resultdesk/app/models"
)

func GetStudentByRoll(db *sql.DB, roll string) (*models.Student, error) {
	student := &models.Student{}
	query := `SELECT roll, name, class, COALESCE(dob, '') FROM students WHERE roll = $1`

	err := db.QueryRow(query, roll).Scan(
		&student.Roll, &student.Name, &student.Class, &student.DOB,
	)

	if err != nil {
		return nil, err
	}
	return student, nil
}

func CreateStudent(db *sql.DB, student *models.Student) error {
	query := `INSERT INTO students (roll, name, class, dob) VALUES ($1, $2, $3, $4)
			  ON CONFLICT (roll)
			  DO UPDATE SET name = EXCLUDED.name, class = EXCLUDED.class, dob = EXCLUDED.dob`
	_, err := db.Exec(query, student.Roll, student.Name, student.Class, student.DOB)
	return err
}

// AddMark records one graded entry. Repeated (roll, subject, exam_type) rows
// accumulate, there is no uniqueness constraint. A non-positive maxMarks falls
// back to 100.
func AddMark(db *sql.DB, roll, subject, examType string, marks, maxMarks float64) error {
	if maxMarks <= 0 {
		maxMarks = 100
	}
	query := `INSERT INTO marks (roll, subject, exam_type, marks, max_marks)
			  VALUES ($1, $2, $3, $4, $5)`
	_, err := db.Exec(query, roll, subject, examType, marks, maxMarks)
	return err
}

func GetMarksByRoll(db *sql.DB, roll string) ([]models.Mark, error) {
	query := `SELECT id, roll, subject, exam_type, marks, COALESCE(max_marks, 100)
			  FROM marks WHERE roll = $1 ORDER BY created_at, id`

	rows, err := db.Query(query, roll)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []models.Mark
	for rows.Next() {
		var m models.Mark
		if err := rows.Scan(&m.ID, &m.Roll, &m.Subject, &m.ExamType, &m.Marks, &m.MaxMarks); err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}
