package models

import "time"

// Folder organizes notes. Folders form a tree through ParentID (nil for roots).
type Folder struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ParentID *int   `json:"parentId"`
	Expanded bool   `json:"expanded"`
}

// Note is the subset of a server note the folder tree needs
type Note struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	FolderID  *int      `json:"folderId"`
	Pinned    bool      `json:"pinned,omitempty"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
