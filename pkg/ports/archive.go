package ports

import "context"

// ArchiveMember is one named file inside a deliverable archive.
type ArchiveMember struct {
	Name string
	Data []byte
}

// Archiver packs named byte buffers into a single compressed archive.
// The archive is assembled in memory and returned only when every member
// has been added; a failure partway through yields no archive at all.
type Archiver interface {
	Create(ctx context.Context, members []ArchiveMember) ([]byte, error)
}
