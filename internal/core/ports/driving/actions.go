package driving

// ActionService hands rule text and exported files to the desktop.
type ActionService interface {
	// CopyToClipboard copies text to the system clipboard.
	CopyToClipboard(text string) error

	// OpenPath opens a file in the default application.
	OpenPath(path string) error
}
