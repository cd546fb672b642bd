package pubsub

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// WatermillBridge implements Publisher and Subscriber on watermill's
// in-memory GoChannel.
type WatermillBridge struct {
	pub    message.Publisher
	sub    message.Subscriber
	tracer trace.Tracer
	// propagator carries the publish span across the bus in message metadata.
	propagator propagation.TextMapPropagator
	// shutdownTracing flushes the tracer provider owned by this bridge.
	shutdownTracing func(context.Context) error
}

const (
	// Metadata keys used to carry Message fields through a watermill message.
	metaKeySubject = "subject"
	metaKeyTopic   = "topic"
)

// NewWatermillBridge initializes the in-memory bus without tracing.
// Messages published before anyone subscribes are dropped.
func NewWatermillBridge() *WatermillBridge {
	return NewWatermillBridgeWithTracer(noop.NewTracerProvider().Tracer(tracerName))
}

// NewWatermillBridgeWithTracer initializes the bus with a span around every
// publish and every handled message.
func NewWatermillBridgeWithTracer(tracer trace.Tracer) *WatermillBridge {
	logger := watermill.NewStdLogger(false, false)
	goChannel := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		logger,
	)

	return &WatermillBridge{
		pub:        goChannel,
		sub:        goChannel,
		tracer:     tracer,
		propagator: propagation.TraceContext{},
	}
}

// NewTracedWatermillBridge sets up tracing from cfg and returns a bridge
// that owns the tracer provider and shuts it down on Close.
func NewTracedWatermillBridge(ctx context.Context, cfg TracingConfig) (*WatermillBridge, error) {
	tracer, shutdown, err := SetupTracing(ctx, cfg)
	if err != nil {
		return nil, err
	}
	wb := NewWatermillBridgeWithTracer(tracer)
	wb.shutdownTracing = shutdown
	return wb, nil
}

func toWatermill(msg Message) *message.Message {
	wmMsg := message.NewMessage(watermill.NewUUID(), msg.Payload)
	for k, v := range msg.Metadata {
		wmMsg.Metadata.Set(k, v)
	}
	wmMsg.Metadata.Set(metaKeySubject, msg.Subject)
	wmMsg.Metadata.Set(metaKeyTopic, msg.Topic)
	return wmMsg
}

func (wb *WatermillBridge) fromWatermill(wmMsg *message.Message) Message {
	internal := append([]string{metaKeySubject, metaKeyTopic}, wb.propagator.Fields()...)
	metadata := make(map[string]string)
	for k, v := range wmMsg.Metadata {
		if !slices.Contains(internal, k) {
			metadata[k] = v
		}
	}
	return Message{
		Topic:    wmMsg.Metadata.Get(metaKeyTopic),
		Subject:  wmMsg.Metadata.Get(metaKeySubject),
		Payload:  wmMsg.Payload,
		Metadata: metadata,
	}
}

// Publish implements the Publisher interface.
func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	spanCtx, span := startSpan(ctx, wb.tracer, "publish", msg)
	wmMsg := toWatermill(msg)
	wb.propagator.Inject(spanCtx, propagation.MapCarrier(wmMsg.Metadata))
	err := wb.pub.Publish(msg.Topic, wmMsg)
	endSpan(span, err)
	return err
}

// Subscribe implements the Subscriber interface. It returns as soon as the
// subscription is active; messages are handled on a background goroutine.
func (wb *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := wb.sub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for wmMsg := range messages {
			msg := wb.fromWatermill(wmMsg)
			parent := wb.propagator.Extract(ctx, propagation.MapCarrier(wmMsg.Metadata))
			spanCtx, span := startSpan(parent, wb.tracer, "process", msg)
			err := handler(spanCtx, msg)
			endSpan(span, err)
			if err != nil {
				slog.Error("Failed to handle message", "topic", topic, "msg_id", wmMsg.UUID, "error", err)
				wmMsg.Nack()
				continue
			}
			wmMsg.Ack()
		}
		slog.Debug("Subscription message loop ended", "topic", topic)
	}()

	return nil
}

// Close shuts the bus down and ends every subscription loop.
func (wb *WatermillBridge) Close() error {
	err := wb.sub.Close()
	if wb.shutdownTracing != nil {
		if tErr := wb.shutdownTracing(context.Background()); tErr != nil && err == nil {
			err = tErr
		}
	}
	return err
}
