package lint

import "fmt"

// Leniency controls whether warnings are escalated to serious violations.
type Leniency int

const (
	LeniencyDefault Leniency = iota
	LeniencyStrict
)

// LeniencyFromStrict maps the --strict flag onto a Leniency.
func LeniencyFromStrict(strict bool) Leniency {
	if strict {
		return LeniencyStrict
	}
	return LeniencyDefault
}

func (l Leniency) String() string {
	switch l {
	case LeniencyStrict:
		return "strict"
	default:
		return "default"
	}
}

// ParseLeniency parses the String form of a Leniency.
func ParseLeniency(s string) (Leniency, error) {
	switch s {
	case "", "default":
		return LeniencyDefault, nil
	case "strict":
		return LeniencyStrict, nil
	default:
		return LeniencyDefault, fmt.Errorf("unknown leniency: %s (valid options: default, strict)", s)
	}
}
