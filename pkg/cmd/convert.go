package cmd

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
)

// Factory builds a value of a custom type from a raw token.
type Factory func(raw string) (any, error)

// Converter coerces raw tokens into declared parameter types.
type Converter struct {
	resolver  Resolver
	factories map[Type]Factory
	strict    bool
	log       zerolog.Logger
}

// NewConverter returns a Converter resolving entities through r. With strict
// set, an entity lookup that finds nothing fails with InvalidArgument instead
// of binding nil.
func NewConverter(r Resolver, strict bool, log zerolog.Logger) *Converter {
	return &Converter{
		resolver:  r,
		factories: make(map[Type]Factory),
		strict:    strict,
		log:       log,
	}
}

// RegisterFactory makes t a valid parameter type, built by f.
func (c *Converter) RegisterFactory(t Type, f Factory) {
	c.factories[t] = f
}

// Convert coerces raw into t. ec supplies the guild for member lookups and
// may be nil otherwise.
func (c *Converter) Convert(ctx context.Context, raw string, t Type, ec *Context) (any, error) {
	switch t {
	case TypeString, "":
		return raw, nil
	case TypeNumber:
		return parseNumber(raw)
	case TypeBoolean:
		return parseBool(raw)
	case TypeUser:
		return c.lookup(raw, t, func(id string) (any, error) {
			return c.resolver.FetchUser(ctx, id)
		})
	case TypeMember:
		guildID := ""
		if ec != nil {
			guildID = ec.GuildID()
		}
		return c.lookup(raw, t, func(id string) (any, error) {
			return c.resolver.FetchMember(ctx, guildID, id)
		})
	case TypeChannel, TypeTextChannel, TypeVoiceChannel:
		kind := map[Type]ChannelKind{
			TypeChannel:      AnyChannel,
			TypeTextChannel:  TextChannel,
			TypeVoiceChannel: VoiceChannel,
		}[t]
		return c.lookup(raw, t, func(id string) (any, error) {
			return c.resolver.FetchChannel(ctx, id, kind)
		})
	case TypeGuild:
		return c.lookup(raw, t, func(id string) (any, error) {
			return c.resolver.FetchGuild(ctx, id)
		})
	}

	f, ok := c.factories[t]
	if !ok {
		return nil, &Error{Kind: InvalidType, Value: raw, Type: string(t)}
	}
	v, err := f(raw)
	if err != nil {
		return nil, invalidArgument(raw, t, err)
	}
	return v, nil
}

// numberPrefix is the longest leading decimal literal parseNumber accepts.
var numberPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?)`)

// parseNumber reads the longest numeric prefix of raw and ignores the rest,
// so "3abc" is 3. Literals too large for a float64 become ±Inf. Input with no
// numeric prefix is rejected unless it is exactly "NaN".
func parseNumber(raw string) (any, error) {
	if raw == "NaN" {
		return math.NaN(), nil
	}
	prefix := numberPrefix.FindString(strings.TrimLeftFunc(raw, unicode.IsSpace))
	if prefix == "" {
		return nil, invalidArgument(raw, TypeNumber, nil)
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, invalidArgument(raw, TypeNumber, err)
	}
	return v, nil
}

func parseBool(raw string) (any, error) {
	// a Caser keeps state, so one per call
	switch cases.Fold().String(raw) {
	case "y", "t", "yes", "true":
		return true, nil
	case "n", "f", "no", "false":
		return false, nil
	}
	return nil, invalidArgument(raw, TypeBoolean, nil)
}

func (c *Converter) lookup(raw string, t Type, fetch func(id string) (any, error)) (any, error) {
	id := stripMention(raw)
	v, err := fetch(id)
	switch {
	case errors.Is(err, ErrNotFound):
		c.log.Warn().Str("type", string(t)).Str("id", id).Msg("entity not found")
		if c.strict {
			return nil, invalidArgument(raw, t, err)
		}
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("fetch %s %s: %w", t, id, err)
	}
	return v, nil
}

// stripMention turns <@123>, <@!123> and <#123> into 123. Anything else is
// returned unchanged.
func stripMention(raw string) string {
	if len(raw) < 3 || !strings.HasPrefix(raw, "<") || !strings.HasSuffix(raw, ">") {
		return raw
	}
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}
