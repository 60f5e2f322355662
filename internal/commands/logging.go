package commands

import (
	"path/filepath"
	"strings"

	"github.com/goliatone/go-amplitude/internal/logging"
	"github.com/goliatone/go-amplitude/pkg/interfaces"
)

const (
	commandModuleRoot    = "amplitude.commands"
	defaultCommandModule = "compile"
)

// CommandLogger returns the logger for a command module ("compile" when
// empty). contentDir, when set, is attached in cleaned form so every pass
// entry names the tree it compiled.
func CommandLogger(provider interfaces.LoggerProvider, module, contentDir string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = defaultCommandModule
	}
	fields := map[string]any{
		"component":      "command",
		"command_module": name,
	}
	if dir := strings.TrimSpace(contentDir); dir != "" {
		fields["content_dir"] = filepath.Clean(dir)
	}
	return logging.WithFields(logging.ModuleLogger(provider, commandModuleRoot+"."+name), fields)
}
