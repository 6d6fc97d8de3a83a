package classrooms

import "time"

// Classroom belongs to exactly one school; schoolId never changes after
// creation.
type Classroom struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SchoolID  string    `json:"schoolId"`
	Capacity  int       `json:"capacity"`
	Resources []string  `json:"resources"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateClassroomInput carries the createClassroom payload.
type CreateClassroomInput struct {
	Name      string   `json:"name"`
	SchoolID  string   `json:"schoolId"`
	Capacity  int      `json:"capacity"`
	Resources []string `json:"resources"`
}

// UpdateClassroomInput carries the updateClassroom payload; nil fields stay
// untouched. The school is deliberately not updatable here.
type UpdateClassroomInput struct {
	Name      *string   `json:"name"`
	Capacity  *int      `json:"capacity"`
	Resources *[]string `json:"resources"`
}
