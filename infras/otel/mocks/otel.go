package mocks

import (
	"context"

	"venuebook/infras/otel"
)

type nopOtel struct{}

type nopScope struct{}

// NewOtel returns a tracer that records nothing, for tests.
func NewOtel() otel.Otel {
	return nopOtel{}
}

func NewScope() otel.Scope {
	return nopScope{}
}

func (nopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, nopScope{}
}

func (nopOtel) Shutdown(context.Context) error { return nil }

func (nopScope) End()                         {}
func (nopScope) TraceError(error)             {}
func (nopScope) TraceIfError(error)           {}
func (nopScope) AddEvent(string)              {}
func (nopScope) SetAttribute(string, any)     {}
func (nopScope) SetAttributes(map[string]any) {}
