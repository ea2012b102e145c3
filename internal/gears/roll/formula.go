package roll

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	tokenRegex = regexp.MustCompile(`(?i)(\d*d\d+|\d+|[+\-*/])`)
	diceRegex  = regexp.MustCompile(`(?i)^(\d*)d(\d+)$`)
)

const (
	maxDice  = 100
	maxSides = 1000
)

var (
	ErrEmptyFormula   = errors.New("empty formula")
	ErrMissingOperand = errors.New("operator without left operand")
	ErrDivisionByZero = errors.New("division by zero")
)

// Roller returns a uniform value in [1, sides].
type Roller func(sides int) int

// Result is an evaluated formula.
type Result struct {
	Formula string
	Detail  string
	Total   int
	Rolls   int
}

type term struct {
	value int
	desc  string
	op    string
}

// Evaluate rolls a formula such as "2d6+1d4*2-3". Multiplication and division
// bind tighter than addition and subtraction; division truncates.
func Evaluate(formula string, roll Roller) (Result, error) {
	formula = strings.Join(strings.Fields(formula), "")
	tokens := tokenRegex.FindAllString(formula, -1)
	if len(tokens) == 0 {
		return Result{}, ErrEmptyFormula
	}

	res := Result{Formula: formula}
	var terms []term
	op := "+"
	for _, tok := range tokens {
		switch tok {
		case "+", "-", "*", "/":
			op = tok
			continue
		}
		value, desc, n, err := evalToken(tok, roll)
		if err != nil {
			return Result{}, fmt.Errorf("evaluate %q: %w", tok, err)
		}
		res.Rolls += n
		terms = append(terms, term{value: value, desc: desc, op: op})
		op = "+"
	}
	if len(terms) == 0 {
		return Result{}, ErrEmptyFormula
	}

	var sums []term
	for i, t := range terms {
		if t.op != "*" && t.op != "/" {
			sums = append(sums, t)
			continue
		}
		if i == 0 {
			return Result{}, ErrMissingOperand
		}
		prev := &sums[len(sums)-1]
		if t.op == "/" {
			if t.value == 0 {
				return Result{}, ErrDivisionByZero
			}
			prev.value /= t.value
		} else {
			prev.value *= t.value
		}
		prev.desc = fmt.Sprintf("%s %s %s", prev.desc, t.op, t.desc)
	}

	parts := make([]string, 0, 2*len(sums))
	for i, t := range sums {
		if i > 0 {
			parts = append(parts, t.op)
		}
		parts = append(parts, t.desc)
		if t.op == "-" {
			res.Total -= t.value
		} else {
			res.Total += t.value
		}
	}
	if sums[0].op == "-" {
		parts[0] = "-" + parts[0]
	}
	res.Detail = strings.Join(parts, " ")
	return res, nil
}

func evalToken(tok string, roll Roller) (value int, desc string, rolls int, err error) {
	m := diceRegex.FindStringSubmatch(tok)
	if m == nil {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return 0, "", 0, errors.New("not a number or dice")
		}
		return n, fmt.Sprintf("`%d`", n), 0, nil
	}

	count := 1
	if m[1] != "" {
		if count, err = strconv.Atoi(m[1]); err != nil || count < 1 {
			return 0, "", 0, errors.New("invalid dice count")
		}
	}
	sides, err := strconv.Atoi(m[2])
	if err != nil || sides < 2 {
		return 0, "", 0, errors.New("invalid dice sides")
	}
	if count > maxDice || sides > maxSides {
		return 0, "", 0, fmt.Errorf("too big, max %d dice of %d sides", maxDice, maxSides)
	}

	faces := make([]string, count)
	for i := range faces {
		r := roll(sides)
		value += r
		faces[i] = strconv.Itoa(r)
	}
	return value, fmt.Sprintf("`%s` [%s]", tok, strings.Join(faces, ", ")), count, nil
}
