package student

type CreateStudentDTO struct {
	TechziteID  string `json:"techziteId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

type UpdateStudentDTO struct {
	TechziteID  *string `json:"techziteId" validate:"omitempty,min=1"`
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,min=1"`
}

// RosterRow is one spreadsheet line of the student upload.
type RosterRow struct {
	TechziteID  string
	Name        string
	Email       string
	PhoneNumber string
}

func (r RosterRow) complete() bool {
	return r.TechziteID != "" && r.Name != "" && r.Email != "" && r.PhoneNumber != ""
}
