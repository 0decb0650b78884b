package submissions

import "time"

// Submission is one accepted instance of data supplied against a form. The
// submitted mapping is stored verbatim; it is only ever replaced wholesale.
type Submission struct {
	ID        int64
	CompanyID int64
	FormID    int64
	Data      map[string]any
	CreatedBy int64
	CreatedAt time.Time
	UpdatedBy int64
	UpdatedAt time.Time
	Files     []File
}

// File is a stored binary attachment. FileType is the free-text prefix of
// the originating part name (photo_1 -> photo); its lifetime is bound to the
// parent submission.
type File struct {
	ID           int64
	SubmissionID int64
	FileRef      string
	FileType     string
}
