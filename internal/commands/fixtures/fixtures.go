// Package fixtures provides recording doubles shared by command wiring tests.
package fixtures

import (
	command "github.com/goliatone/go-command"
)

// RecordingRegistry captures handlers registered during wiring. Setting Err
// makes every registration attempt fail with it.
type RecordingRegistry struct {
	Handlers []any
	Err      error
}

// NewRecordingRegistry constructs an empty registry recorder.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{}
}

// RegisterCommand satisfies the registry contract the wiring helpers expect.
func (r *RecordingRegistry) RegisterCommand(handler any) error {
	if r.Err != nil {
		return r.Err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// CronRegistration captures one cron wiring invocation.
type CronRegistration struct {
	Config  command.HandlerConfig
	Handler func() error
}

// CronRecorder records calls made through the registrar it hands out.
type CronRecorder struct {
	Registrations []CronRegistration
	err           error
}

// NewCronRecorder constructs an empty cron recorder.
func NewCronRecorder() *CronRecorder {
	return &CronRecorder{}
}

// Fail makes subsequent registrations return err.
func (c *CronRecorder) Fail(err error) {
	c.err = err
}

// Register records one cron wiring invocation.
func (c *CronRecorder) Register(cfg command.HandlerConfig, handler any) error {
	if c.err != nil {
		return c.err
	}
	fn, _ := handler.(func() error)
	c.Registrations = append(c.Registrations, CronRegistration{Config: cfg, Handler: fn})
	return nil
}

// Registrar exposes Register in the function shape go-command registries use.
func (c *CronRecorder) Registrar() func(command.HandlerConfig, any) error {
	return c.Register
}
