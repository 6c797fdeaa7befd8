// Package catalog loads format, task class and component declarations
// from YAML files into a component.Registry.
//
// A catalog file has four optional sections:
//
//	includes: [common.yml]
//	formats:
//	  - {id: txt, extensions: [txt]}
//	tasks:
//	  - name: Ucto
//	    executable: ucto
//	    parameters: [{name: language, type: string, default: nld}]
//	    inputs: [txt]
//	    outputs: [{name: tok, strip: txt, add: tok}]
//	    options: [language]
//	    args: "-n {in:txt} {out:tok}"
//	components:
//	  - name: Tokenize
//	    parameters: [{name: language, type: string}]
//	    accepts: [[txt]]
//	    autosetup: [Ucto]
//
// Includes are resolved relative to the including file, depth first, and
// each file is loaded once; a cycle is an error. Task classes declared in
// YAML run their executable through process.Adapter with the argument
// template expanded against the task's parameters and slots.
package catalog
