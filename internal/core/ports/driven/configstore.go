package driven

// ConfigStore holds the flat settings record: the taxonomy, version folder,
// tracked documents, export and rule formats, UI options and vault location.
// Keys use dot notation ("ui.theme").
//
// The typed getters return the zero value when a key is missing or holds a
// value of another type. Use Get to tell a stored zero from a missing key.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set stores value at key. File-backed stores persist before returning
	// and keep the old value when persisting fails.
	Set(key string, value any) error

	// Save writes the whole record.
	Save() error

	// Load discards in-memory state and rereads the record.
	Load() error

	// Path identifies where the record lives, for display.
	Path() string
}
