// Package validation checks declarations and configuration before they are
// used. Struct tag validation (go-playground/validator) covers the shape of
// format, task and component declarations; the programmatic Validator
// collects cross-field problems.
//
// # Struct Tag Validation
//
//	type Descriptor struct {
//	    ID         string   `yaml:"id" validate:"required,identifier"`
//	    Extensions []string `yaml:"extensions" validate:"required,min=1,dive,extension"`
//	}
//	err := validation.Validate(d)
//
// # Programmatic Validation
//
//	v := validation.New(d.Name)
//	v.Unique("parameters", params.Names(d.Parameters))
//	v.Custom(setup != nil || len(auto) > 0, "setup", "a setup function or autosetup task is required")
//	err := v.Validate()
package validation
