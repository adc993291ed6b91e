package proxy

import (
	"context"
	"sync"

	"honnef.co/go/pointerproxy/io/native"
	"honnef.co/go/pointerproxy/io/pointer"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const scopeName = "honnef.co/go/pointerproxy/proxy"

var (
	meter  = otel.Meter(scopeName)
	logger = otelslog.NewLogger(scopeName)
)

type instruments struct {
	dispatched metric.Int64Counter
	suppressed metric.Int64Counter
	malformed  metric.Int64Counter
	listeners  metric.Int64UpDownCounter

	typeAttrs map[pointer.Type]metric.MeasurementOption
}

var getInstruments = sync.OnceValue(func() *instruments {
	inst := &instruments{
		typeAttrs: make(map[pointer.Type]metric.MeasurementOption, len(pointer.AllTypes)),
	}
	var err error
	if inst.dispatched, err = meter.Int64Counter("pointerproxy.events.dispatched",
		metric.WithDescription("Synthesized pointer events handed to the host")); err != nil {
		logger.Warn("creating instrument", "error", err)
		inst.dispatched = noop.Int64Counter{}
	}
	if inst.suppressed, err = meter.Int64Counter("pointerproxy.mouse.suppressed",
		metric.WithDescription("Mouse events discarded as compatibility events of a touch")); err != nil {
		logger.Warn("creating instrument", "error", err)
		inst.suppressed = noop.Int64Counter{}
	}
	if inst.malformed, err = meter.Int64Counter("pointerproxy.touch.malformed",
		metric.WithDescription("Touch events without a list of changed touches")); err != nil {
		logger.Warn("creating instrument", "error", err)
		inst.malformed = noop.Int64Counter{}
	}
	if inst.listeners, err = meter.Int64UpDownCounter("pointerproxy.listeners",
		metric.WithDescription("Attached native listeners")); err != nil {
		logger.Warn("creating instrument", "error", err)
		inst.listeners = noop.Int64UpDownCounter{}
	}
	for _, t := range pointer.AllTypes {
		inst.typeAttrs[t] = metric.WithAttributeSet(attribute.NewSet(attribute.String("pointer.type", t.String())))
	}
	return inst
})

func (inst *instruments) recordDispatch(t pointer.Type) {
	inst.dispatched.Add(context.Background(), 1, inst.typeAttrs[t])
}

func (inst *instruments) recordSuppressed() {
	inst.suppressed.Add(context.Background(), 1)
}

func (inst *instruments) recordMalformed(t native.Type) {
	inst.malformed.Add(context.Background(), 1, metric.WithAttributes(attribute.String("native.type", t.String())))
}

func (inst *instruments) recordListeners(delta int64) {
	inst.listeners.Add(context.Background(), delta)
}
