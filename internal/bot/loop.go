package bot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/assistant-bot/assistant-bot/internal/config"
)

// Run reads commands line by line from in and writes replies to out.
// It returns nil on exit or end of input, and ctx.Err() once ctx is done.
func (b *Bot) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	log := slog.With(config.LogKeyComponent, config.CompBot)
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, b.msg(config.TKeyWelcome, nil))

	for {
		if err := ctx.Err(); err != nil {
			log.Debug(config.MsgCtxCancel)
			return err
		}

		fmt.Fprint(out, b.msg(config.TKeyPrompt, nil))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("%s: %w", config.ErrReadInput, err)
			}
			return nil
		}

		cmd, args := ParseInput(scanner.Text())
		if cmd == CmdNone {
			continue
		}

		reply, err := b.Execute(ctx, cmd, args)
		if err != nil {
			log.Info(config.MsgCommandFailed,
				config.LogKeyCommand, cmd.String(),
				config.LogKeyError, err,
			)
		} else {
			// Arguments may hold a password; only their count is logged.
			log.Debug(config.MsgCommand,
				config.LogKeyCommand, cmd.String(),
				config.LogKeyArgs, len(args),
			)
		}

		fmt.Fprintln(out, b.Render(reply, err))
		if reply.Exit {
			return nil
		}
	}
}
