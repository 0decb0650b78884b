package submissions

import (
	"github.com/leadforge/leadforge/internal/shared"
)

// FileView is the client-facing representation of an attachment.
type FileView struct {
	ID       int64  `json:"id"`
	File     string `json:"file"`
	FileType string `json:"file_type"`
}

// SubmissionView is the client-facing representation of a stored submission.
// Timestamps are rendered in the fixed display zone as DD-MM-YYYY hh:mm AM/PM.
type SubmissionView struct {
	ID            int64          `json:"id"`
	Form          int64          `json:"form"`
	SubmittedData map[string]any `json:"submitted_data"`
	Files         []FileView     `json:"files"`
	CreateBy      int64          `json:"create_by"`
	CreateDate    string         `json:"create_date"`
	UpdateBy      int64          `json:"update_by"`
	UpdateDate    string         `json:"update_date"`
}

// NewSubmissionView formats a submission for clients.
func NewSubmissionView(sub Submission, clock *shared.DisplayClock) SubmissionView {
	files := make([]FileView, 0, len(sub.Files))
	for _, file := range sub.Files {
		files = append(files, FileView{
			ID:       file.ID,
			File:     file.FileRef,
			FileType: file.FileType,
		})
	}
	return SubmissionView{
		ID:            sub.ID,
		Form:          sub.FormID,
		SubmittedData: sub.Data,
		Files:         files,
		CreateBy:      sub.CreatedBy,
		CreateDate:    clock.Format(sub.CreatedAt),
		UpdateBy:      sub.UpdatedBy,
		UpdateDate:    clock.Format(sub.UpdatedAt),
	}
}
