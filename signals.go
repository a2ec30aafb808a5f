package imprint

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for capture events.
var (
	SignalCaptureStart      = capitan.NewSignal("imprint.capture.start", "Capture beginning")
	SignalCaptureComplete   = capitan.NewSignal("imprint.capture.complete", "Capture finished")
	SignalProtocolViolation = capitan.NewSignal("imprint.protocol.violation", "Driving value broke the visitor protocol")
	SignalErrorPersisted    = capitan.NewSignal("imprint.error.persisted", "Value error recorded as an error leaf")
)

// Keys for typed event data.
var (
	KeyMode      = capitan.NewStringKey("mode")
	KeyChecking  = capitan.NewStringKey("checking")
	KeyPath      = capitan.NewStringKey("path")
	KeyNodes     = capitan.NewIntKey("nodes")
	KeyPersisted = capitan.NewIntKey("persisted_count")
	KeyDuration  = capitan.NewDurationKey("duration")
	KeyError     = capitan.NewErrorKey("error")
	KeyMessage   = capitan.NewStringKey("message")
)

func checkingLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

// emitCaptureStart emits an event when a capture begins.
func emitCaptureStart(ctx context.Context, mode ErrorMode, checking bool) {
	capitan.Emit(ctx, SignalCaptureStart,
		KeyMode.Field(mode.String()),
		KeyChecking.Field(checkingLabel(checking)),
	)
}

// emitCaptureComplete emits an event when a capture finishes.
func emitCaptureComplete(ctx context.Context, mode ErrorMode, duration time.Duration, nodes, persisted int, err error) {
	fields := []capitan.Field{
		KeyMode.Field(mode.String()),
		KeyDuration.Field(duration),
		KeyNodes.Field(nodes),
		KeyPersisted.Field(persisted),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalCaptureComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalCaptureComplete, fields...)
	}
}

// emitProtocolViolation emits an event when the checker rejects a call.
func emitProtocolViolation(ctx context.Context, path Path, err error) {
	capitan.Error(ctx, SignalProtocolViolation,
		KeyPath.Field(path.String()),
		KeyError.Field(err),
	)
}

// emitErrorPersisted emits an event when a value error becomes an Error leaf.
func emitErrorPersisted(ctx context.Context, path Path, err error) {
	capitan.Emit(ctx, SignalErrorPersisted,
		KeyPath.Field(path.String()),
		KeyMessage.Field(err.Error()),
	)
}
