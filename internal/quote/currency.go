package quote

import "strings"

// Orientation tells how an exchange rate is quoted for a target currency.
type Orientation int

const (
	// TargetPerBase rates give target units bought by one base unit (1 BRL = 1450 PYG).
	TargetPerBase Orientation = iota + 1
	// BasePerTarget rates give base units needed for one target unit (1 USD = 5.50 BRL).
	BasePerTarget
)

// Currency holds the parameters of a target currency.
type Currency struct {
	Code        string
	NoteSize    float64
	Decimals    int32
	Orientation Orientation
}

var (
	// PYG is the Paraguayan guaraní, disbursed in 50 000 notes.
	PYG = Currency{Code: "PYG", NoteSize: 50000, Decimals: 0, Orientation: TargetPerBase}
	// USD is the US dollar, disbursed in 50 notes.
	USD = Currency{Code: "USD", NoteSize: 50, Decimals: 2, Orientation: BasePerTarget}
)

// Currencies lists the supported target currencies.
var Currencies = []Currency{PYG, USD}

// LookupCurrency finds a supported currency by its code, case-insensitively.
func LookupCurrency(code string) (Currency, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// ToTarget converts a base amount into target units.
func (c Currency) ToTarget(base, rate float64) float64 {
	if c.Orientation == BasePerTarget {
		return base / rate
	}
	return base * rate
}

// ToBase converts a target amount into base units.
func (c Currency) ToBase(target, rate float64) float64 {
	if c.Orientation == BasePerTarget {
		return target * rate
	}
	return target / rate
}

func (c Currency) valid() bool {
	return c.NoteSize > 0 && (c.Orientation == TargetPerBase || c.Orientation == BasePerTarget)
}
