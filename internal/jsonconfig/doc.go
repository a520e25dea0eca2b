// Package jsonconfig loads node configuration documents written as JSON or
// YAML.
//
// # Document Shape
//
// The root of a document is a folder object:
//
//	{
//	  "Folder": "MyTelemetry",
//	  "NamespaceIndex": 2,
//	  "FolderList": [ { "Folder": "Child", "NodeList": [] } ],
//	  "NodeList": [
//	    { "NodeId": 1023, "Parameters": { "$type": "CountUp", "Start": 5 } }
//	  ]
//	}
//
// Keys are matched case-insensitively and unknown keys are ignored. The
// "$type" discriminator of a Parameters block selects the simulation variant;
// short names (CountUp, Counter, Sequence) and fully qualified type names
// ending in CountUpSimulatedParameters or SequenceSimulatedParameters are
// accepted. A block without "$type" is a sequence when it carries "Values"
// and a counter otherwise.
//
// YAML documents use the same keys. They are decoded with yaml.v3 into a
// generic tree and then go through the same decoder, so defaults and
// validation are identical for both formats.
package jsonconfig
