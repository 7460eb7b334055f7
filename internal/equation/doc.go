// Package equation generates the constraint rows of the model. Each family
// pairs an index signature with a rule; Run walks the enabled families in
// parallel and returns their rows in registration order.
package equation
