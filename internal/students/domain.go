package students

import "time"

// Student belongs to exactly one school; classroom assignment is optional.
type Student struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Age         int       `json:"age,omitempty"`
	SchoolID    string    `json:"schoolId"`
	ClassroomID *string   `json:"classroomId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateStudentInput carries the createStudent payload.
type CreateStudentInput struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Age         int     `json:"age"`
	SchoolID    string  `json:"schoolId"`
	ClassroomID *string `json:"classroomId"`
}

// UpdateStudentInput carries the updateStudent payload; nil fields stay
// untouched. School and classroom only move through TransferStudent.
type UpdateStudentInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Age   *int    `json:"age"`
}

// TransferStudentInput relocates a student; schoolId and classroomId change
// together in one write, and an absent classroomId clears the assignment.
type TransferStudentInput struct {
	SchoolID    string  `json:"schoolId"`
	ClassroomID *string `json:"classroomId"`
}
