// Package ladder implements a nonlinear four-stage ladder lowpass filter.
//
// Each integrator stage saturates through tanh, and the cutoff tuning uses
// the Huovilainen polynomial corrections so the corner tracks across the
// audible range. The bass voice owns one instance per note and closes the
// filter over the pluck decay via [Filter.Modulate], which skips parameter
// validation and only recomputes the tuning coefficients.
package ladder
