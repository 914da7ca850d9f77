package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath         = "path"
	KeyResolvedPath = "resolved_path"
	KeyToken        = "token"
	KeyRouteKind    = "route_kind"
	KeyNavigationID = "navigation_id"
	KeyStage        = "stage"
	KeyDocuments    = "documents"
	KeyStubs        = "stubs"
	KeyStatus       = "status"
	KeyURL          = "url"
	KeyQuery        = "query"
	KeyOutcome      = "outcome"
	KeyDurationMS   = "duration_ms"
	KeyError        = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func ResolvedPath(p string) slog.Attr   { return slog.String(KeyResolvedPath, p) }
func Token(t string) slog.Attr          { return slog.String(KeyToken, t) }
func RouteKind(k string) slog.Attr      { return slog.String(KeyRouteKind, k) }
func NavigationID(id string) slog.Attr  { return slog.String(KeyNavigationID, id) }
func Stage(name string) slog.Attr       { return slog.String(KeyStage, name) }
func Documents(n int) slog.Attr         { return slog.Int(KeyDocuments, n) }
func Stubs(n int) slog.Attr             { return slog.Int(KeyStubs, n) }
func Status(code int) slog.Attr         { return slog.Int(KeyStatus, code) }
func URL(u string) slog.Attr            { return slog.String(KeyURL, u) }
func Query(q string) slog.Attr          { return slog.String(KeyQuery, q) }
func Outcome(o string) slog.Attr        { return slog.String(KeyOutcome, o) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
