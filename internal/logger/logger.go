package logger

import "go.uber.org/zap"

// New builds the process logger: JSON in prod, console everywhere else.
func New(env string) (*zap.Logger, error) {
	if env == "prod" || env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
