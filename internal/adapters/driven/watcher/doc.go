// Package watcher reports markdown changes in the vault using fsnotify.
//
// Folders are watched recursively; folders created later are added as
// they appear. Bursts of events are coalesced per path and released at a
// rate set by a token bucket, so a bulk copy into the vault produces one
// change per document rather than one per write.
package watcher
