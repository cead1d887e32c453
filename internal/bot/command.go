package bot

import (
	"strings"

	"github.com/assistant-bot/assistant-bot/internal/config"
)

// Command identifies one entry of the command table.
type Command int

const (
	// CmdNone is a blank input line.
	CmdNone Command = iota
	// CmdUnknown is any first word outside the table.
	CmdUnknown
	CmdHello
	CmdAdd
	CmdChange
	CmdPhone
	CmdRemovePhone
	CmdAll
	CmdAddBirthday
	CmdShowBirthday
	CmdBirthdays
	CmdDelete
	CmdExport
	CmdExportICS
	CmdImport
	CmdLogin
	CmdLang
	CmdHelp
	CmdExit
)

// spec describes how a command is invoked.
type spec struct {
	name    string
	minArgs int
	usage   string
	mutates bool // The published feeds are rebuilt after success.
}

// commands is ordered as the help text lists them.
var commands = []struct {
	cmd Command
	spec
}{
	{CmdHello, spec{config.CmdNameHello, 0, "hello", false}},
	{CmdAdd, spec{config.CmdNameAdd, 2, "add [name] [phone]", true}},
	{CmdChange, spec{config.CmdNameChange, 2, "change [name] [new phone] | change [name] [old phone] [new phone]", true}},
	{CmdPhone, spec{config.CmdNamePhone, 1, "phone [name]", false}},
	{CmdRemovePhone, spec{config.CmdNameRemovePhone, 2, "remove-phone [name] [phone]", true}},
	{CmdAll, spec{config.CmdNameAll, 0, "all", false}},
	{CmdAddBirthday, spec{config.CmdNameAddBirthday, 2, "add-birthday [name] [DD.MM.YYYY]", true}},
	{CmdShowBirthday, spec{config.CmdNameShowBirthday, 1, "show-birthday [name]", false}},
	{CmdBirthdays, spec{config.CmdNameBirthdays, 0, "birthdays [DD.MM.YYYY]", false}},
	{CmdDelete, spec{config.CmdNameDelete, 1, "delete [name]", true}},
	{CmdExport, spec{config.CmdNameExport, 1, "export [file.vcf]", false}},
	{CmdExportICS, spec{config.CmdNameExportICS, 1, "export-ics [file.ics]", false}},
	{CmdImport, spec{config.CmdNameImport, 1, "import [file.vcf | https://url]", true}},
	{CmdLogin, spec{config.CmdNameLogin, 2, "login [user] [password]", false}},
	{CmdLang, spec{config.CmdNameLang, 1, "lang [" + strings.Join(config.SupportedLanguages, "|") + "]", true}},
	{CmdHelp, spec{config.CmdNameHelp, 0, "help", false}},
	{CmdExit, spec{config.CmdNameExit, 0, "close | exit", false}},
}

var (
	byName = map[string]Command{config.CmdNameClose: CmdExit}
	specs  = map[Command]spec{}
)

func init() {
	for _, c := range commands {
		byName[c.name] = c.cmd
		specs[c.cmd] = c.spec
	}
}

// String returns the command word, used in logs.
func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdUnknown:
		return "unknown"
	}
	return specs[c].name
}

// ParseInput splits a line on whitespace. The first word selects the command
// case-insensitively; the remaining words are returned unchanged.
func ParseInput(line string) (Command, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return CmdNone, nil
	}
	cmd, ok := byName[strings.ToLower(fields[0])]
	if !ok {
		return CmdUnknown, fields[1:]
	}
	return cmd, fields[1:]
}
