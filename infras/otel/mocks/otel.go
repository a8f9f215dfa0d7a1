// Package mocks provides a no-op tracer for unit tests.
package mocks

import (
	"context"

	"hotel/infras/otel"
)

type noopOtel struct{}

func NewOtel() otel.Otel {
	return noopOtel{}
}

func (noopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (noopOtel) Shutdown(context.Context) error {
	return nil
}

type noopScope struct{}

func NewScope() otel.Scope {
	return noopScope{}
}

func (noopScope) End()                         {}
func (noopScope) TraceError(error)             {}
func (noopScope) TraceIfError(error)           {}
func (noopScope) AddEvent(string)              {}
func (noopScope) SetAttribute(string, any)     {}
func (noopScope) SetAttributes(map[string]any) {}
