// Package logger builds slog loggers with per-environment defaults and
// context-driven attributes.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "storykit"),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextExtractors(
//			logger.ExtractString("request_id", requestid.FromContext),
//		),
//	)
//	log.InfoContext(ctx, "decision", logger.UserID(userID), logger.Tier(t))
//
// Attribute helpers (UserID, Tier, Resource, Period, Error) keep key names
// uniform across services.
package logger
