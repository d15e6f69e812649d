package domain

import "errors"

// Notice is a short user-visible message.
type Notice string

// User-visible notices.
const (
	NoticeNoActiveFile       Notice = "No active file to track version for!"
	NoticeNoActiveView       Notice = "No active markdown view found!"
	NoticeVersionSaved       Notice = "Version saved successfully!"
	NoticeNoVersionHistory   Notice = "No version history found!"
	NoticeNoBacklinks        Notice = "No backlinks found!"
	NoticeSavingVersion      Notice = "Saving version..."
	NoticeExportingPDF       Notice = "Exporting PDF..."
	NoticeSaveVersionFailed  Notice = "Failed to save version. Please try again."
	NoticeExportFailed       Notice = "Export failed. Please try again."
	NoticeExportedMarkdown   Notice = "Exported as MD successfully!"
	NoticeExportedPlainText  Notice = "Exported as TXT successfully!"
	NoticeExportedPDF        Notice = "Exported as PDF successfully!"
	NoticeSettingsSaveFailed Notice = "Failed to save settings. Please try again."
	NoticeInsertFailed       Notice = "Failed to insert rule. Please try again."
)

// String returns the notice text.
func (n Notice) String() string {
	return string(n)
}

// NoticeFor maps an error to the notice shown to the user. Taxonomy shape
// errors are shown verbatim; I/O errors get a generic retry notice.
func NoticeFor(err error) Notice {
	switch {
	case err == nil:
		return ""
	case IsTaxonomyError(err):
		return Notice(err.Error())
	case errors.Is(err, ErrNoActiveDocument):
		return NoticeNoActiveFile
	case errors.Is(err, ErrExportFailure):
		return NoticeExportFailed
	case errors.Is(err, ErrSettingsPersistFailure):
		return NoticeSettingsSaveFailed
	case errors.Is(err, ErrDocumentWriteFailure):
		return NoticeInsertFailed
	case errors.Is(err, ErrPersistFailure):
		return NoticeSaveVersionFailed
	default:
		return Notice(err.Error())
	}
}
