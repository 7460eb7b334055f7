// Package emit turns generated records and the objective into a numbered
// linear system. Its Build is the only place columns and rows are assigned,
// which keeps the numbering a function of registration order alone.
//
// The symbolic and lpfile subpackages render a System for a solver.
package emit
