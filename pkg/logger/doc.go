// Package logger builds context-aware slog loggers with functional
// options and domain attribute helpers.
//
// New returns a *slog.Logger whose handler runs registered
// ContextExtractor callbacks on every record, so request-scoped values
// like the tenant or actor ID appear on each line without threading
// them through call sites.
//
//	log := logger.New(
//		logger.WithService("platform-api", cfg.AppEnv),
//		logger.WithContextExtractors(
//			logger.ContextValue("request_id", ctxKeyRequestID),
//		),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "module access denied",
//		logger.TenantID(tenant.ID),
//		logger.Module(moduleID),
//		logger.CountryCode(tenant.CountryCode),
//	)
package logger
