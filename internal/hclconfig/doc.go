// Package hclconfig loads node configuration written in HCL.
//
// A file holds exactly one top-level folder block. Folders nest, and each
// node carries at most one simulation block:
//
//	folder "MyTelemetry" {
//	  namespace_index = 2
//
//	  node {
//	    id   = 1023
//	    name = "ActualCounter"
//	    counter {
//	      interval_ms = 500
//	      start       = 5
//	      step_by     = 3
//	    }
//	  }
//
//	  folder "Child" {
//	    node {
//	      id = "s1"
//	      sequence { values = [10, 20, 30] }
//	    }
//	  }
//	}
//
// Identifiers, initial values and sequence values are arbitrary expressions
// evaluated without variables and converted from cty into config values.
package hclconfig
