package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// TenantID records the tenant identifier under the key "tenant_id".
func TenantID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("tenant_id", id)
}

// ActorID records the acting user identifier under the key "actor_id".
func ActorID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("actor_id", id)
}

// Role records a role name under the key "role".
func Role(role any) slog.Attr {
	if role == nil {
		return slog.Attr{}
	}
	return slog.Any("role", role)
}

// CountryCode records the country under the key "country_code".
func CountryCode(code string) slog.Attr {
	return slog.String("country_code", code)
}

// Module records the business module under the key "module".
func Module(id any) slog.Attr {
	return slog.Any("module", id)
}

// Decision records a guard or audit decision under the key "decision".
func Decision(d any) slog.Attr {
	return slog.Any("decision", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
