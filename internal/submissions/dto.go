package submissions

import "io"

// Upload is one named binary part attached to a submission request.
type Upload struct {
	// Key is the part name, expected as {file_type}_{discriminator}.
	Key         string
	Filename    string
	ContentType string
	Content     io.Reader
}

// SubmitRequest carries one inbound submission.
type SubmitRequest struct {
	FormID int64
	Data   map[string]any
	Files  []Upload
}
