package folder

import "errors"

// Folder-related errors
var (
	ErrInvalidFolderID = errors.New("invalid folder ID")
	ErrFolderNotFound  = errors.New("folder not found")
)
