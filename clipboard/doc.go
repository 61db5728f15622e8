// Package clipboard exports text to the system clipboard with a two-tier
// strategy: the native clipboard first, then a transient-file copy through
// a platform copy command. Failures never propagate past the exporter's
// error return; callers log a ClipboardFailure diagnostic and carry on.
package clipboard
