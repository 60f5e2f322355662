package compilecmd

import (
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const compileDirectoryMessageType = "amplitude.compile.directory"

// CompileDirectoryCommand compiles the content tree under Directory and, on
// success, publishes the resulting index.
type CompileDirectoryCommand struct {
	// Directory is the content root to compile.
	Directory string `json:"directory"`
	// PassID names the generation directory; a random id is used when unset.
	PassID uuid.UUID `json:"pass_id,omitempty"`
}

// Type implements command.Message.
func (CompileDirectoryCommand) Type() string { return compileDirectoryMessageType }

// Validate ensures the directory exists before handlers execute.
func (cmd CompileDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			dir := strings.TrimSpace(value.(string))
			if dir == "" {
				return validation.NewError("amplitude.compile.directory.directory_required", "directory is required")
			}
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				return validation.NewError("amplitude.compile.directory.directory_missing", "directory does not exist")
			}
			return nil
		})),
	)
}
