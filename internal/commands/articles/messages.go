package articlescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const buildIndexMessageType = "blog.articles.build_index"

// StdoutOutput selects standard output as the index destination.
const StdoutOutput = "-"

// BuildIndexCommand loads the article listing and writes it as JSON to
// Output, either a file path or StdoutOutput.
type BuildIndexCommand struct {
	// Output is the destination file, or "-" for standard output.
	Output string `json:"output"`
	// Indent pretty-prints the JSON document.
	Indent bool `json:"indent,omitempty"`
}

// Type implements command.Message.
func (BuildIndexCommand) Type() string { return buildIndexMessageType }

// Validate ensures an output destination is present before handlers execute.
func (cmd BuildIndexCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Output, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.articles.build_index.output_required", "output is required")
			}
			return nil
		})),
	)
}
