package quote

import (
	"errors"
	"math"
)

// Reasons a quote is declined.
var (
	ErrInvalidInput       = errors.New("invalid input amount")
	ErrAmbiguousDirection = errors.New("exactly one of pay or receive amount must be given")
	ErrRateUnavailable    = errors.New("exchange rate unavailable")
	ErrInvalidCurrency    = errors.New("invalid target currency")
)

// Direction is the side of the transaction the customer specified.
type Direction int

const (
	// PayDriven starts from the base amount the customer is willing to pay.
	PayDriven Direction = iota + 1
	// ReceiveDriven starts from the target amount the customer wants to receive.
	ReceiveDriven
)

// DefaultMaxIterations bounds the convergence loop when none is given.
const DefaultMaxIterations = 5

// Request is the input of a single quote computation.
type Request struct {
	// Pay is the base amount offered. Set it or Receive, never both.
	Pay *float64
	// Receive is the target amount wanted.
	Receive *float64
	// Rate is quoted according to Currency.Orientation. Zero means no rate is known.
	Rate        float64
	Currency    Currency
	DeliveryFee float64
}

// Direction reports which side drives the request.
func (r Request) Direction() (Direction, error) {
	switch {
	case r.Pay != nil && r.Receive == nil:
		return PayDriven, nil
	case r.Receive != nil && r.Pay == nil:
		return ReceiveDriven, nil
	default:
		return 0, ErrAmbiguousDirection
	}
}

// Quote is a reconciled conversion.
type Quote struct {
	Pay         float64 // base currency, 2 decimals
	Receive     float64 // target currency, multiple of the note size
	Fee         float64 // base currency, 2 decimals
	DeliveryFee float64 // base currency
	Net         float64 // base amount actually converted
}

// IsZero reports whether q is the empty quote returned on decline.
func (q Quote) IsZero() bool {
	return q == Quote{}
}

// Solver computes quotes. The zero value uses the two-pass fee refinement.
// A Solver carries no mutable state and is safe for concurrent use.
type Solver struct {
	maxIterations int
}

// Option configures a Solver.
type Option func(*Solver)

// WithConvergence replaces the two-pass refinement with a loop that stops once
// the fee bracket of the total no longer changes, bounded by maxIterations.
// A non-positive bound selects DefaultMaxIterations.
func WithConvergence(maxIterations int) Option {
	return func(s *Solver) {
		if maxIterations <= 0 {
			maxIterations = DefaultMaxIterations
		}
		s.maxIterations = maxIterations
	}
}

// NewSolver creates a Solver.
func NewSolver(opts ...Option) Solver {
	var s Solver
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Solve reconciles fee, delivery fee and note rounding for the request.
// Declined requests return the zero Quote together with the reason.
func (s Solver) Solve(req Request) (Quote, error) {
	dir, err := req.Direction()
	if err != nil {
		return Quote{}, err
	}
	if !req.Currency.valid() {
		return Quote{}, ErrInvalidCurrency
	}
	if !positive(req.Rate) {
		return Quote{}, ErrRateUnavailable
	}
	if req.DeliveryFee < 0 || math.IsNaN(req.DeliveryFee) || math.IsInf(req.DeliveryFee, 0) {
		return Quote{}, ErrInvalidInput
	}

	var target, net float64
	switch dir {
	case PayDriven:
		if !positive(*req.Pay) {
			return Quote{}, ErrInvalidInput
		}
		target, net = s.fromPay(req)
	case ReceiveDriven:
		if !positive(*req.Receive) {
			return Quote{}, ErrInvalidInput
		}
		target = RoundToNote(*req.Receive, req.Currency.NoteSize)
		net = req.Currency.ToBase(target, req.Rate)
	}

	fee, total := s.refine(net, req.DeliveryFee)
	// Amounts near the float64 limit overflow during conversion.
	if !finite(target) || !finite(net) || !finite(fee) || !finite(total) {
		return Quote{}, ErrInvalidInput
	}

	return Quote{
		Pay:         roundPlaces(total, baseDecimals),
		Receive:     roundPlaces(target, req.Currency.Decimals),
		Fee:         roundPlaces(fee, baseDecimals),
		DeliveryFee: req.DeliveryFee,
		Net:         net,
	}, nil
}

// fromPay estimates the fee on the offered amount, converts what is left and
// rounds it to notes, then back-solves the base amount the notes cost.
func (s Solver) fromPay(req Request) (target, net float64) {
	paid := *req.Pay
	available := math.Max(0, paid-Fee(paid)-req.DeliveryFee)
	target = RoundToNote(req.Currency.ToTarget(available, req.Rate), req.Currency.NoteSize)
	return target, req.Currency.ToBase(target, req.Rate)
}

// refine resolves the circular dependency between the fee and the total paid.
//
// The default is a fixed two-pass approximation: the fee is estimated on
// net+delivery, then charged on that total plus the estimate. Because the
// flat brackets are wide compared to the fee steps, the bracket of the final
// total matches the one the fee was taken from. With WithConvergence the
// passes repeat until the bracket is stable.
func (s Solver) refine(net, deliveryFee float64) (fee, total float64) {
	base := net + deliveryFee

	if s.maxIterations <= 0 {
		fee = Fee(base + Fee(base))
		return fee, net + fee + deliveryFee
	}

	fee = Fee(base)
	for i := 0; i < s.maxIterations; i++ {
		next := Fee(base + fee)
		stable := Bracket(base+next) == Bracket(base+fee)
		fee = next
		if stable {
			break
		}
	}
	return fee, net + fee + deliveryFee
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Solve computes a quote with the default two-pass Solver.
func Solve(req Request) (Quote, error) {
	return Solver{}.Solve(req)
}
