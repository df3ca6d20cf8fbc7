package registrar

import (
	"errors"

	"poll-engine/internal/domain"
	"poll-engine/pkg/logger"
)

// logFailure reports a rejected operation: validation rejections as
// warnings, collaborator failures as structured errors.
func logFailure(log *logger.Logger, msg string, err error, kv ...interface{}) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		log.Warning(msg, append(kv, "error", err.Error(), "code", verr.Code)...)
		return
	}

	context := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			context[key] = kv[i+1]
		}
	}
	log.StructuredError(msg, err, context)
}

func resolveClock(clock domain.Clock) domain.Clock {
	if clock == nil {
		return domain.SystemClock{}
	}
	return clock
}

func resolveIDs(ids domain.IDGenerator) domain.IDGenerator {
	if ids == nil {
		return domain.UUIDGenerator{}
	}
	return ids
}
