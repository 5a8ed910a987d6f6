// internal/match/ball.go
//
// Delivery kinds and the ball-by-ball display grammar.
//
// Grammar (one history entry per delivery):
//   - "0".."6"            legal delivery, runs off the bat
//   - "W"                 wicket (bowled/caught, or run out on a legal ball)
//   - "WD"[+"<n>"][+"W"]  wide, optional runs run, optional wicket
//   - "NB"[+"<n>"][+"W"]  no-ball, optional runs off the bat, optional wicket
//
// e.g. "WD+1+W" is a wide where the batters ran one and a wicket fell.

package match

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxRunsOffBat bounds the runs on a single delivery.
const MaxRunsOffBat = 6

// ErrInvalidBall is returned for malformed ball input. It signals a caller
// bug, not an end-of-play condition.
var ErrInvalidBall = errors.New("invalid ball")

// Kind is the type of delivery.
type Kind string

const (
	KindLegal  Kind = "legal"
	KindWide   Kind = "wide"
	KindNoBall Kind = "no-ball"
	KindWicket Kind = "wicket"
)

// ParseKind maps a wire string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindLegal, KindWide, KindNoBall, KindWicket:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidBall, s)
}

// Ball is one delivery as entered by the scorer.
//
// A run out off a legal delivery is a KindLegal ball with Wicket set; a plain
// dismissal is KindWicket with no runs. Both shapes are kept as-is because the
// keypad emits them separately.
type Ball struct {
	Kind   Kind
	Runs   int
	Wicket bool
}

// Validate reports malformed input.
func (b Ball) Validate() error {
	if b.Runs < 0 {
		return fmt.Errorf("%w: negative runs %d", ErrInvalidBall, b.Runs)
	}
	if b.Runs > MaxRunsOffBat {
		return fmt.Errorf("%w: runs %d exceed %d", ErrInvalidBall, b.Runs, MaxRunsOffBat)
	}
	switch b.Kind {
	case KindLegal, KindWide, KindNoBall:
		return nil
	case KindWicket:
		if b.Wicket {
			return fmt.Errorf("%w: extra wicket flag on a wicket ball", ErrInvalidBall)
		}
		if b.Runs != 0 {
			return fmt.Errorf("%w: wicket ball carries %d runs", ErrInvalidBall, b.Runs)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidBall, b.Kind)
	}
}

// Symbol renders the history entry for a delivery.
func Symbol(b Ball) string {
	switch b.Kind {
	case KindWicket:
		return "W"
	case KindWide:
		return extraSymbol("WD", b)
	case KindNoBall:
		return extraSymbol("NB", b)
	default:
		if b.Wicket {
			return "W"
		}
		return strconv.Itoa(b.Runs)
	}
}

func extraSymbol(prefix string, b Ball) string {
	s := prefix
	if b.Runs > 0 {
		s += "+" + strconv.Itoa(b.Runs)
	}
	if b.Wicket {
		s += "+W"
	}
	return s
}

// ParseSymbol decodes a history entry back into a Ball.
// "W" always decodes as KindWicket: runs completed before a legal-ball run out
// are not recoverable from the symbol.
func ParseSymbol(s string) (Ball, error) {
	if s == "W" {
		return Ball{Kind: KindWicket}, nil
	}
	parts := strings.Split(s, "+")
	var b Ball
	switch parts[0] {
	case "WD":
		b.Kind = KindWide
	case "NB":
		b.Kind = KindNoBall
	default:
		if len(parts) != 1 || len(s) != 1 || s[0] < '0' || s[0] > '6' {
			return Ball{}, fmt.Errorf("%w: bad symbol %q", ErrInvalidBall, s)
		}
		return Ball{Kind: KindLegal, Runs: int(s[0] - '0')}, nil
	}

	rest := parts[1:]
	if len(rest) > 0 && rest[len(rest)-1] == "W" {
		b.Wicket = true
		rest = rest[:len(rest)-1]
	}
	switch len(rest) {
	case 0:
	case 1:
		n, err := strconv.Atoi(rest[0])
		if err != nil || n <= 0 || n > MaxRunsOffBat || strconv.Itoa(n) != rest[0] {
			return Ball{}, fmt.Errorf("%w: bad symbol %q", ErrInvalidBall, s)
		}
		b.Runs = n
	default:
		return Ball{}, fmt.Errorf("%w: bad symbol %q", ErrInvalidBall, s)
	}
	return b, nil
}
