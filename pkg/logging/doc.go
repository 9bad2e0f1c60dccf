// Package logging holds the library's diagnostic logger.
//
// The wrappers never log on an access path. The only emission points are
// rare diagnostics: multi-lock retry storms and the deadlock-detector build
// notice. The default logger writes text to stderr at Warn and above; host
// programs that want the debug diagnostics route them into their own
// slog.Logger with Set.
package logging
