package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPrefix sets the text every command message starts with. Default "!".
func WithPrefix(prefix string) Option {
	return func(d *Dispatcher) { d.prefix = prefix }
}

// WithUnknownCommandResponse makes the dispatcher answer unregistered
// command names with "unknown command '<name>'".
func WithUnknownCommandResponse(enabled bool) Option {
	return func(d *Dispatcher) { d.unknownReply = enabled }
}

// WithStrictLookups makes entity lookups that find nothing fail with
// InvalidArgument instead of binding nil.
func WithStrictLookups(strict bool) Option {
	return func(d *Dispatcher) { d.strict = strict }
}

// WithLogger replaces the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// WithMiddleware wraps every handler; the first middleware is the outermost.
func WithMiddleware(mws ...Middleware) Option {
	return func(d *Dispatcher) { d.middleware = append(d.middleware, mws...) }
}

// WithFactory registers a constructor for a custom parameter type.
func WithFactory(t Type, f Factory) Option {
	return func(d *Dispatcher) { d.factories[t] = f }
}

// Dispatcher routes messages to commands in its Registry.
type Dispatcher struct {
	platform     Platform
	registry     *Registry
	converter    *Converter
	prefix       string
	unknownReply bool
	strict       bool
	middleware   []Middleware
	factories    map[Type]Factory
	log          zerolog.Logger
}

// NewDispatcher creates a dispatcher with an empty registry owned by it.
func NewDispatcher(p Platform, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		platform:  p,
		prefix:    "!",
		factories: make(map[Type]Factory),
		log:       log.Logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.registry = NewRegistry(d.log)
	d.converter = NewConverter(p, d.strict, d.log)
	for t, f := range d.factories {
		d.converter.RegisterFactory(t, f)
	}
	return d
}

// Registry returns the dispatcher's command registry.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Converter returns the dispatcher's type converter.
func (d *Dispatcher) Converter() *Converter { return d.converter }

// Prefix returns the configured command prefix.
func (d *Dispatcher) Prefix() string { return d.prefix }

// RegisterGear is shorthand for d.Registry().RegisterGear.
func (d *Dispatcher) RegisterGear(ctx context.Context, g Gear) error {
	return d.registry.RegisterGear(ctx, g)
}

// Dispatch runs one message through the pipeline. Every failure after the
// command is resolved has already been answered in chat when Dispatch
// returns it; the returned error is for logging only. Messages that do not
// start with the prefix and unknown commands return nil.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) error {
	if !strings.HasPrefix(msg.Content, d.prefix) {
		return nil
	}
	text := msg.Content[len(d.prefix):]

	tokens := Tokenize(text)
	positional, flags := ExtractFlags(tokens)
	if len(positional) == 0 {
		return nil
	}

	name := positional[0].Text
	c, ok := d.registry.Lookup(name)
	if !ok {
		if d.unknownReply {
			if err := d.platform.Reply(ctx, msg, fmt.Sprintf("unknown command '%s'", name)); err != nil {
				d.log.Error().Err(err).Str("command", name).Msg("failed to send reply")
			}
		}
		return nil
	}

	ec := newContext(msg, d.platform)
	l := d.log.With().Str("dispatch", ec.ID()).Str("command", c.Name).Logger()

	for _, check := range c.Checks {
		if ok, message := check(ctx, ec); !ok {
			return d.fail(ctx, l, ec, &Error{Kind: CheckFailed, Command: c.Name, Message: message})
		}
	}

	var flagTokens []Token
	for _, t := range tokens {
		if isFlag(t) {
			flagTokens = append(flagTokens, t)
		}
	}
	args, err := bind(ctx, d.converter, c, ec, input{
		text:       text,
		args:       positional[1:],
		flagTokens: flagTokens,
		flags:      flags,
	})
	if err != nil {
		return d.fail(ctx, l, ec, err)
	}

	inv := &Invocation{Command: c, Exec: ec, Args: args}
	if err := d.invoke(ctx, inv); err != nil {
		return d.fail(ctx, l, ec, &Error{Kind: HandlerFailure, Command: c.Name, Err: err})
	}
	l.Debug().Msg("command completed")
	return nil
}

func (d *Dispatcher) invoke(ctx context.Context, inv *Invocation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return Chain(inv.Command.Handler, d.middleware...)(ctx, inv)
}

// fail sends the one chat reply a failed dispatch gets and returns err.
func (d *Dispatcher) fail(ctx context.Context, l zerolog.Logger, ec *Context, err error) error {
	reply := handlerFailureReply(err)
	var e *Error
	if errors.As(err, &e) {
		reply = e.Reply()
	}

	if e == nil || e.Kind == HandlerFailure {
		l.Error().Err(err).Msg("command failed")
	} else {
		l.Debug().Err(err).Msg("command rejected")
	}

	if reply == "" {
		return err
	}
	if sendErr := ec.Send(ctx, reply); sendErr != nil {
		l.Error().Err(sendErr).Msg("failed to send reply")
	}
	return err
}
