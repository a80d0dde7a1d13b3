// Package logger provides structured logging for patchkit built on zerolog.
//
// The descriptor layer logs extraction runs through this package; the core
// pipeline package stays silent so it can be embedded without pulling a
// logging policy into hot paths.
package logger
