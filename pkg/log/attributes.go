package log

import "log/slog"

// Attribute keys shared by the pipeline stages.
const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"

	FigureKey = "figure"
	PathKey   = "path"
	RowsKey   = "rows"
	GroupsKey = "groups"
	ViewKey   = "view"
)

// ErrAttr wraps an error for slog so ErrFmtHandler can find it.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// Figure names a produced figure artifact.
func Figure(name string) slog.Attr {
	return slog.String(FigureKey, name)
}

// Path names a filesystem path involved in an operation.
func Path(p string) slog.Attr {
	return slog.String(PathKey, p)
}

// Rows records a row count.
func Rows(n int) slog.Attr {
	return slog.Int(RowsKey, n)
}

// Groups records a group count.
func Groups(n int) slog.Attr {
	return slog.Int(GroupsKey, n)
}

// View names a derived view.
func View(name string) slog.Attr {
	return slog.String(ViewKey, name)
}
