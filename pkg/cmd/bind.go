package cmd

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// input is a tokenized message with the command name already consumed.
type input struct {
	text       string  // message with the prefix stripped; token offsets point here
	args       []Token // positional tokens after the command name
	flagTokens []Token // every flag token in input order
	flags      FlagMap
}

// bind aligns in to c's parameters. Positional tokens are assigned in order
// first; coercions then run concurrently and the first failure is returned.
// On error no argument list is returned.
func bind(ctx context.Context, conv *Converter, c *Command, ec *Context, in input) ([]any, error) {
	params := c.Params
	hasRest := len(params) > 0 && params[len(params)-1].Rest
	if hasRest {
		params = params[:len(params)-1]
	}

	type job struct {
		slot  int
		raw   string
		typ   Type
		flags *FlagSchema
	}

	args := make([]any, len(params), len(params)+1)
	var jobs []job
	next := 0
	for i, p := range params {
		switch {
		case p.Context:
			args[i] = ec
		case p.Flags != nil:
			if name, ok := p.Flags.unknown(in.flagTokens); ok {
				return nil, &Error{Kind: UnknownFlag, Command: c.Name, Flag: name}
			}
			jobs = append(jobs, job{slot: i, flags: p.Flags})
		case next < len(in.args):
			jobs = append(jobs, job{slot: i, raw: in.args[next].Text, typ: p.Type})
			next++
		case p.Optional:
			args[i] = nil
		default:
			return nil, &Error{
				Kind:     TooFewArguments,
				Command:  c.Name,
				Expected: c.required(),
				Got:      len(in.args) + 1, // command name counts
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			var v any
			var err error
			if j.flags != nil {
				v, err = bindFlags(gctx, conv, j.flags, in.flags, ec)
			} else {
				v, err = conv.Convert(gctx, j.raw, j.typ, ec)
			}
			if err != nil {
				return err
			}
			args[j.slot] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if hasRest {
		start := len(in.text)
		if next < len(in.args) {
			start = in.args[next].Index
		}
		args = append(args, restText(in.text, start, in.flagTokens))
	}
	return args, nil
}

func bindFlags(ctx context.Context, conv *Converter, schema *FlagSchema, flags FlagMap, ec *Context) (Flags, error) {
	values := newFlags(schema)
	for _, f := range schema.Fields {
		raw, ok := flags[f.Name]
		if !ok {
			continue
		}
		v, err := conv.Convert(ctx, raw, f.Type, ec)
		if err != nil {
			return Flags{}, err
		}
		values[f.Name] = v
	}
	return Flags{values: values}, nil
}

// restText returns text[start:] verbatim, minus any flag tokens inside it.
func restText(text string, start int, flagTokens []Token) string {
	if start >= len(text) {
		return ""
	}
	var b strings.Builder
	pos := start
	for _, t := range flagTokens {
		if t.Index < start {
			continue
		}
		b.WriteString(text[pos:t.Index])
		pos = t.Index + t.Length
	}
	b.WriteString(text[pos:])
	return b.String()
}
