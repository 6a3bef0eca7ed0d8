package domain

import "io"

// FileUpload is a file received from a client, such as a profile avatar.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}
