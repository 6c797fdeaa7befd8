package task

import (
	"github.com/kbukum/nlpwire/format"
	"github.com/kbukum/nlpwire/params"
)

// Parameters of a source task.
const (
	ParamPath      = "path"
	ParamBasename  = "basename"
	ParamExtension = "extension"
	ParamFormatID  = "format_id"
	ParamDirectory = "directory"
)

// SourceClass returns the external class standing for a raw input of
// format d. Its single output slot is named after the format id.
func SourceClass(d *format.Descriptor) *Class {
	return &Class{
		Name: "inputtask_" + d.ID,
		Parameters: []params.Decl{
			{Name: ParamPath, Kind: params.KindString, Required: true},
			{Name: ParamBasename, Kind: params.KindString},
			{Name: ParamExtension, Kind: params.KindString},
			{Name: ParamFormatID, Kind: params.KindString},
			{Name: ParamDirectory, Kind: params.KindBool},
		},
		Outputs: []OutputDecl{{
			Name:      d.ID,
			Directory: d.Directory,
			Target: func(t *Task) (string, error) {
				return t.Params.String(ParamPath), nil
			},
		}},
		External: true,
	}
}

// SourceParams binds a resolved input to source task parameters.
func SourceParams(r format.Resolved) params.Values {
	return params.Values{
		ParamPath:      params.String(r.Path),
		ParamBasename:  params.String(r.Basename),
		ParamExtension: params.String(r.Extension),
		ParamFormatID:  params.String(r.FormatID),
		ParamDirectory: params.Bool(r.Directory),
	}
}
