package mpd

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/tagdeck/internal/domain"
)

// Tag negotiation commands
const (
	CmdTagTypesAll   = "tagtypes all"
	CmdTagTypesClear = "tagtypes clear"

	cmdListBegin = "command_list_begin"
	cmdListEnd   = "command_list_end"
)

// TagTypesCommands returns the command list restricting the server to
// report only the tags in set.
func TagTypesCommands(set domain.TagSet) []string {
	cmds := []string{cmdListBegin, CmdTagTypesClear}
	if set.Len() > 0 {
		cmds = append(cmds, "tagtypes enable "+strings.Join(set.Names(), " "))
	}
	return append(cmds, cmdListEnd)
}

// CommandWriter sends commands as newline terminated lines to W.
// W is typically the server connection.
type CommandWriter struct {
	W io.Writer
}

var _ domain.TagNegotiator = (*CommandWriter)(nil)

// SendCommands writes every command on its own line
func (c *CommandWriter) SendCommands(commands []string) error {
	for _, cmd := range commands {
		if _, err := fmt.Fprintf(c.W, "%s\n", cmd); err != nil {
			return fmt.Errorf("failed to send %q: %w", cmd, err)
		}
	}
	return nil
}

// EnableTags sends the command list for set
func (c *CommandWriter) EnableTags(set domain.TagSet) error {
	return c.SendCommands(TagTypesCommands(set))
}

// EnableAllTags sends "tagtypes all"
func (c *CommandWriter) EnableAllTags() error {
	return c.SendCommands([]string{CmdTagTypesAll})
}

// DisableAllTags sends "tagtypes clear"
func (c *CommandWriter) DisableAllTags() error {
	return c.SendCommands([]string{CmdTagTypesClear})
}
