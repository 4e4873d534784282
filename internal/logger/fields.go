package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Keys shared by the recommendation pipeline and the summarizer.
const (
	FieldRole     = "role"
	FieldLanguage = "lang"
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
)

type StringField struct {
	Key   string
	Value string
}

// StringFields keeps the pairs whose trimmed key and value are both set.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key, value := strings.TrimSpace(field.Key), strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields is logger.With that tolerates a nil logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// RequestFields tag the log lines of one recommendation request. The
// language is left out while it is still unresolved.
func RequestFields(role, lang string) []zap.Field {
	return StringFields(
		StringField{Key: FieldRole, Value: role},
		StringField{Key: FieldLanguage, Value: lang},
	)
}

// WithRequest scopes logger to a role and output language.
func WithRequest(logger *zap.Logger, role, lang string) *zap.Logger {
	return WithFields(logger, RequestFields(role, lang)...)
}

// AIFields name the summarizer backend.
func AIFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithAI(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, AIFields(provider, model)...)
}
