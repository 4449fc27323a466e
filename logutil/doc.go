// Package logutil builds the one process-wide *zap.Logger that the
// processor and bench packages take at construction. It is a thin wrapper around
// github.com/pingcap/log's InitLogger, the same logging setup the
// teacher's scheduler/server/config.Config uses: Level/Format/File on a
// log.Config turn into a *zap.Logger plus rotation properties, and the
// caller keeps the concrete *zap.Logger rather than going through
// pingcap/log's package-level globals.
package logutil
