// Package sweep holds the independent variable of an evaluation run and the
// series produced over it.
package sweep
