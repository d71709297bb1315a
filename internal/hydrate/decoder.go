// Package hydrate turns decoded pack documents into typed values through a
// pipeline of pre-hooks, a decoder and post-hooks.
package hydrate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-faker/internal/clone"
)

// Context identifies the document being decoded.
type Context struct {
	Code   string
	Source string
}

func (c Context) label() string {
	if c.Source != "" {
		return fmt.Sprintf("%q (%s)", c.Code, c.Source)
	}
	return fmt.Sprintf("%q", c.Code)
}

// PreHook lets callers mutate or normalise the payload before decoding.
type PreHook func(Context, map[string]any) (map[string]any, error)

// PostHook lets callers adjust or validate the decoded value.
type PostHook[T any] func(Context, *T) error

// CustomDecoder replaces the default JSON decoding when provided.
type CustomDecoder[T any] func(Context, map[string]any) (T, error)

// DecoderOption configures a Decoder instance.
type DecoderOption[T any] func(*Decoder[T])

// Decoder converts generic payloads into T.
type Decoder[T any] struct {
	preHooks     []PreHook
	postHooks    []PostHook[T]
	configureDec []func(*json.Decoder)
	custom       CustomDecoder[T]
}

// WithPreHook applies hook prior to decoding.
func WithPreHook[T any](hook PreHook) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.preHooks = append(d.preHooks, hook)
	}
}

// WithPostHook applies hook after decoding completes.
func WithPostHook[T any](hook PostHook[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// WithDisallowUnknownFields rejects payload keys without a matching field on
// the default JSON path.
func WithDisallowUnknownFields[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.configureDec = append(d.configureDec, func(dec *json.Decoder) {
			dec.DisallowUnknownFields()
		})
	}
}

// WithCustomDecoder replaces the default JSON decoding path.
func WithCustomDecoder[T any](decoder CustomDecoder[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.custom = decoder
	}
}

// NewDecoder builds a decoder from opts.
func NewDecoder[T any](opts ...DecoderOption[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Stage names a step of the decode pipeline.
type Stage string

const (
	StagePreHook  Stage = "pre-hook"
	StageDecode   Stage = "decoder"
	StagePostHook Stage = "post-hook"
)

// StageError reports the pipeline step that rejected a document.
type StageError struct {
	Stage   Stage
	Context Context
	Custom  bool
	Err     error
}

func (e *StageError) Error() string {
	stage := string(e.Stage)
	if e.Custom {
		stage = "custom " + stage
	}
	return fmt.Sprintf("hydrate: %s for %s failed: %v", stage, e.Context.label(), e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Decode converts payload into T. The payload is deep copied before the
// pre-hooks run, so callers keep their document intact.
func (d *Decoder[T]) Decode(ctx Context, payload map[string]any) (T, error) {
	var zero T
	if payload == nil {
		return zero, fmt.Errorf("hydrate: payload is nil for %s", ctx.label())
	}

	current := clone.Of(payload)
	for _, hook := range d.preHooks {
		if hook == nil {
			continue
		}
		next, err := hook(ctx, current)
		if err != nil {
			return zero, &StageError{Stage: StagePreHook, Context: ctx, Err: err}
		}
		if next != nil {
			current = next
		}
	}

	result, err := d.decode(ctx, current)
	if err != nil {
		return zero, &StageError{Stage: StageDecode, Context: ctx, Custom: d.custom != nil, Err: err}
	}

	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, &result); err != nil {
			return zero, &StageError{Stage: StagePostHook, Context: ctx, Err: err}
		}
	}
	return result, nil
}

func (d *Decoder[T]) decode(ctx Context, payload map[string]any) (T, error) {
	if d.custom != nil {
		return d.custom(ctx, payload)
	}
	var result T
	buffer, err := json.Marshal(payload)
	if err != nil {
		return result, err
	}
	decoder := json.NewDecoder(bytes.NewReader(buffer))
	for _, configure := range d.configureDec {
		configure(decoder)
	}
	err = decoder.Decode(&result)
	return result, err
}
