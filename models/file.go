package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EntryType is the kind of a stored entry.
type EntryType string

const (
	// Folder groups other entries and never has a payload.
	Folder EntryType = "folder"

	// File is an opaque payload.
	File EntryType = "file"

	// Image is a payload that additionally receives thumbnails.
	Image EntryType = "image"
)

// Valid reports whether t is one of the known entry kinds.
func (t EntryType) Valid() bool {
	switch t {
	case Folder, File, Image:
		return true
	}
	return false
}

// HasPayload reports whether entries of this kind carry content bytes.
func (t EntryType) HasPayload() bool {
	return t == File || t == Image
}

// ThumbnailWidths lists the widths, in pixels, generated for every image.
var ThumbnailWidths = []int{500, 250, 100}

// IsThumbnailWidth reports whether width is one of [ThumbnailWidths].
func IsThumbnailWidth(width int) bool {
	for _, w := range ThumbnailWidths {
		if w == width {
			return true
		}
	}
	return false
}

// ParentID references the folder an entry lives in. The zero value means
// the root of the owner's tree.
//
// Clients send the root either as the number 0, the string "0", an empty
// string or null; all of them decode to the zero value. The root is encoded
// back as the number 0.
type ParentID string

// RootParentID is the parent of top-level entries.
const RootParentID ParentID = ""

// IsRoot reports whether p points at the root of the tree.
func (p ParentID) IsRoot() bool {
	return p == RootParentID
}

// String returns the raw identifier, or an empty string for the root.
func (p ParentID) String() string {
	return string(p)
}

// ParseParentID normalizes a query or path value into a [ParentID].
func ParseParentID(raw string) ParentID {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return RootParentID
	}
	return ParentID(raw)
}

// UnmarshalJSON accepts both string and numeric identifiers.
func (p *ParentID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = RootParentID
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = ParseParentID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("parentId must be a string or a number: %w", err)
	}
	*p = ParseParentID(n.String())
	return nil
}

// MarshalJSON writes the root as 0 and any other parent as a string.
func (p ParentID) MarshalJSON() ([]byte, error) {
	if p.IsRoot() {
		return []byte("0"), nil
	}
	return json.Marshal(string(p))
}

// FileEntry is the metadata record of a folder, file or image.
//
// Payload bytes never travel inside a FileEntry: they live in blob storage
// at LocalPath, with thumbnails stored alongside at "<LocalPath>_<width>".
type FileEntry struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Name     string    `json:"name"`
	Type     EntryType `json:"type"`
	IsPublic bool      `json:"isPublic"`
	ParentID ParentID  `json:"parentId"`

	// LocalPath is the blob location of the payload. Empty for folders.
	LocalPath string `json:"-"`

	// Thumbnails maps width to blob location. Nil until the thumbnail job
	// for an image completes.
	Thumbnails map[int]string `json:"-"`

	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the FileEntry model.
func (f FileEntry) TableName() string {
	return "files"
}

// IsOwnedBy reports whether userID owns the entry.
func (f FileEntry) IsOwnedBy(userID string) bool {
	return f.UserID == userID
}

// VisibleTo reports whether userID may read the entry.
func (f FileEntry) VisibleTo(userID string) bool {
	return f.IsPublic || f.IsOwnedBy(userID)
}

// CreateEntryRequest is the body of POST /files.
type CreateEntryRequest struct {
	Name     string    `json:"name"`
	Type     EntryType `json:"type"`
	ParentID ParentID  `json:"parentId"`
	IsPublic bool      `json:"isPublic"`

	// Data is the base64-encoded payload. Required for files and images.
	Data string `json:"data"`
}

// ListEntriesRequest selects one page of an owner's entries under a parent.
type ListEntriesRequest struct {
	ParentID ParentID
	Page     int
}

// FileContent is the payload of a file or image, or one of its thumbnails.
type FileContent struct {
	Name string
	Data []byte
}
