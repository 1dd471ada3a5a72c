package domain

import "io"

// Upload is a binary handle that has not been stored yet.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Attachment is either a locator of a stored object or a pending upload.
// Pending uploads are resolved to a locator before a record is persisted.
type Attachment struct {
	Locator string
	Upload  *Upload
}

// LocatorAttachment wraps an already stored locator.
func LocatorAttachment(locator string) Attachment { return Attachment{Locator: locator} }

// Pending reports whether the attachment still holds an unuploaded handle.
func (a Attachment) Pending() bool { return a.Upload != nil }

// Present reports whether the attachment carries either form.
func (a Attachment) Present() bool {
	return a.Locator != "" || (a.Upload != nil && a.Upload.Name != "")
}

// Object storage directories, one per entity type.
const (
	DirMembers  = "members"
	DirProjects = "projects"
	DirAvatars  = "avatars"
)
