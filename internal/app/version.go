package app

import "log/slog"

// Build metadata, stamped at link time:
//
//	go build -ldflags "-X github.com/heartmarshall/serenity-backend/internal/app.Version=1.4.0 \
//	  -X github.com/heartmarshall/serenity-backend/internal/app.Commit=$(git rev-parse --short HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildInfo groups the build metadata for structured startup logs.
func BuildInfo() slog.Attr {
	return slog.Group("build",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("time", BuildTime),
	)
}
