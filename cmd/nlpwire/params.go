package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/nlpwire/fanout"
	"github.com/kbukum/nlpwire/params"
)

// paramFlags are the parameter flags shared by run, plan and batch commands.
type paramFlags struct {
	assignments []string
	json        string
}

func (p *paramFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVar(&p.assignments, "param", nil, "Component parameter as name=value (repeatable)")
	f.StringVar(&p.json, "params", "", "Component parameters as a JSON object")
}

// bundle parses the flags into one parameter set. Assignments win over
// the JSON object.
func (p *paramFlags) bundle() (fanout.Bundle, error) {
	values := params.Values{}
	for _, s := range p.assignments {
		name, v, err := params.ParseAssignment(s)
		if err != nil {
			return fanout.Bundle{}, err
		}
		values[name] = v
	}
	return fanout.Bundle{Values: values, JSON: p.json}, nil
}
