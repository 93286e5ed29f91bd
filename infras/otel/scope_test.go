package otel

import (
	"testing"
	"time"

	"venuebook/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestToAttribute(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  attribute.KeyValue
	}{
		{name: "bool", value: true, want: attribute.Bool("k", true)},
		{name: "int", value: 60, want: attribute.Int("k", 60)},
		{name: "int64", value: int64(2001), want: attribute.Int64("k", 2001)},
		{name: "float", value: 1.5, want: attribute.Float64("k", 1.5)},
		{name: "strings", value: []string{"a", "b"}, want: attribute.StringSlice("k", []string{"a", "b"})},
		{name: "time", value: time.Date(2021, 1, 4, 16, 40, 0, 0, time.UTC), want: attribute.String("k", "2021-01-04T16:40:00Z")},
		{name: "stringer", value: time.Monday, want: attribute.String("k", "Monday")},
		{name: "fallback", value: struct{ A int }{1}, want: attribute.String("k", "{1}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toAttribute("k", tt.value))
		})
	}
}

func TestTraceErrorSkipsBusinessRejections(t *testing.T) {
	span := &recordingSpan{}
	scope := NewScope(span)

	scope.TraceIfError(nil)
	scope.TraceIfError(failure.BookingConflict())
	assert.Equal(t, []string{"rejected"}, span.events)
	assert.Zero(t, span.errors)

	scope.TraceIfError(assert.AnError)
	assert.Equal(t, 1, span.errors)
}

type recordingSpan struct {
	noop.Span

	events []string
	errors int
}

func (s *recordingSpan) AddEvent(name string, _ ...oteltrace.EventOption) {
	s.events = append(s.events, name)
}

func (s *recordingSpan) RecordError(_ error, _ ...oteltrace.EventOption) {
	s.errors++
}
