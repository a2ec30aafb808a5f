package sanitize

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/imprint"
)

// SignalSanitizeComplete is emitted after every Apply.
var SignalSanitizeComplete = capitan.NewSignal("imprint.sanitize.complete", "Sanitize operation finished")

// Keys for typed event data.
var (
	KeyMaskedCount    = capitan.NewIntKey("masked_count")
	KeyHashedCount    = capitan.NewIntKey("hashed_count")
	KeyEncryptedCount = capitan.NewIntKey("encrypted_count")
	KeyRedactedCount  = capitan.NewIntKey("redacted_count")
)

func emitSanitizeComplete(ctx context.Context, duration time.Duration, n counts, err error) {
	fields := []capitan.Field{
		imprint.KeyDuration.Field(duration),
		KeyMaskedCount.Field(n.masked),
		KeyHashedCount.Field(n.hashed),
		KeyEncryptedCount.Field(n.encrypted),
		KeyRedactedCount.Field(n.redacted),
	}
	if err != nil {
		fields = append(fields, imprint.KeyError.Field(err))
		capitan.Error(ctx, SignalSanitizeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalSanitizeComplete, fields...)
	}
}
