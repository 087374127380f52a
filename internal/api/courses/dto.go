package courses

type CourseInput struct {
	SubjectID uint   `json:"subject_id" binding:"required"`
	Title     string `json:"title" binding:"required,max=200"`
	Slug      string `json:"slug" binding:"omitempty,max=200"`
	Overview  string `json:"overview"`
}

type UpdateCourseInput struct {
	SubjectID *uint   `json:"subject_id"`
	Title     *string `json:"title" binding:"omitempty,min=1,max=200"`
	Slug      *string `json:"slug" binding:"omitempty,max=200"`
	Overview  *string `json:"overview"`
}
