package interp

import "time"

// NewClockNative builds the core's single built-in: clock() -> Number of
// seconds since this native was created, no arguments. Cancellation/timeouts
// are a driver concern; this is a plain monotonic-seconds read.
func NewClockNative() *NativeFunction {
	epoch := time.Now()
	return &NativeFunction{
		Name:   "clock",
		Arity_: 0,
		Handler: func(_ *Evaluator, _ []Value) (Value, error) {
			return NumberValue{Value: time.Since(epoch).Seconds()}, nil
		},
	}
}
