// Package hcl provides the HCL implementation of config.Loader and writes
// the resolved run configuration back out as an HCL snapshot.
//
// A run is declared as a labelled block:
//
//	run "hub" {
//	  input_dir  = "input/${run.name}"
//	  hub        = true
//	  sentinel   = unbounded
//	  outputs    = ["lp", "tables"]
//
//	  solve {
//	    tolerance = 1e-9
//	  }
//	}
//
// Expressions are evaluated with the variables run.name and unbounded and
// the functions lower, upper and format.
package hcl
