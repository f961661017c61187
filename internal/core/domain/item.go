package domain

import "strings"

// DriveItem represents a file or folder node in the remote drive tree.
// Items are owned by the remote store; the core only reads them.
type DriveItem struct {
	// ID is the opaque identifier assigned by the remote store.
	// Identity is the ID; the name is mutable display data.
	ID string

	// Name is the item's current file or folder name.
	Name string

	// WebURL is a browser link to the item, when the store provides one.
	WebURL string

	// Folder is true when the item is a folder rather than a file.
	Folder bool

	// Size is the item's size in bytes. Zero for folders.
	Size int64
}

// HasExtension reports whether the item is a file whose name ends in ext.
// The comparison is case-insensitive. Folders never match.
func (i DriveItem) HasExtension(ext string) bool {
	if i.Folder || ext == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(i.Name), strings.ToLower(ext))
}

// BaseName returns the item name with its extension stripped.
func (i DriveItem) BaseName() string {
	idx := strings.LastIndex(i.Name, ".")
	if idx <= 0 {
		return i.Name
	}
	return i.Name[:idx]
}
