// Package roll is the dice gear.
package roll

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/keshon/gearcmd/pkg/cmd"
)

const category = "🎲 Gameplay"

type Gear struct {
	// Roller defaults to math/rand.
	Roller Roller
}

func (g *Gear) Commands() []*cmd.Command {
	return []*cmd.Command{
		{
			Name:        "roll",
			Aliases:     []string{"dice"},
			Description: "Roll dice with formulas like `2d6+1d4*2-3`",
			Category:    category,
			Params: []cmd.Param{
				cmd.ContextArg(),
				cmd.FlagsArg(
					cmd.FlagField{Name: "verbose", Type: cmd.TypeBoolean, Default: false},
					cmd.FlagField{Name: "label", Type: cmd.TypeString, Default: ""},
				),
				cmd.RestArg("formula"),
			},
			Handler: g.roll,
		},
	}
}

func (g *Gear) roll(ctx context.Context, inv *cmd.Invocation) error {
	ec := inv.Exec
	flags := inv.Flags(1)

	roller := g.Roller
	if roller == nil {
		roller = func(sides int) int { return rand.Intn(sides) + 1 }
	}

	res, err := Evaluate(inv.String(2), roller)
	switch {
	case errors.Is(err, ErrEmptyFormula):
		return ec.Send(ctx, "Can't parse your formula. Try something like `2d6+1d4*2-3`")
	case errors.Is(err, ErrDivisionByZero):
		return ec.Send(ctx, "Division by zero is forbidden. Even in games.")
	case err != nil:
		return ec.Send(ctx, "Failed to roll: "+err.Error())
	}

	var b strings.Builder
	b.WriteString("🎲 ")
	if label := flags.String("label"); label != "" {
		b.WriteString("**" + label + "** ")
	}
	fmt.Fprintf(&b, "%s rolled **%d**", ec.AuthorName(), res.Total)
	if flags.Bool("verbose") {
		fmt.Fprintf(&b, "\n**Formula**: `%s`\n**Calculation**: %s", res.Formula, res.Detail)
	}
	return ec.Send(ctx, b.String())
}
