// Package backup maps the decoded device model to and from flat JSON
// snapshots for file-based backup and restore.
//
// The mapping is deliberately forgiving on the way in: unknown keys are
// ignored and missing keys leave the corresponding device field untouched,
// so old tools can restore new backups and partial snapshots act as
// targeted updates. It is strict on the way out to the device: every value
// re-encodes through the codec package before anything is written, so a
// snapshot that cannot be represented on the wire fails before the first
// write rather than half way through.
package backup
