package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"nutrisnap/internal/history"
)

const (
	commandNew  = "/new"
	commandQuit = "/quit"

	thinkingText = "NutriSnap is thinking..."
	resetPrompt  = "Clear current conversation history? [y/N] "
)

// Console терминальный интерфейс чата поверх Session.
type Console struct {
	session *Session
	history *history.Manager
	in      *bufio.Scanner
	out     io.Writer
}

func NewConsole(session *Session, h *history.Manager, in io.Reader, out io.Writer) *Console {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &Console{session: session, history: h, in: scanner, out: out}
}

// Run печатает сохранённую историю и обрабатывает ввод до /quit, EOF или отмены ctx.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "NutriSnap AI - Personal Nutritionist")
	fmt.Fprintf(c.out, "Type a health question. %s starts a new chat, %s exits.\n", commandNew, commandQuit)
	for _, msg := range c.history.Messages() {
		c.printMessage(msg)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(c.out, "> ")

		line, ok := c.readLine()
		if !ok {
			fmt.Fprintln(c.out)
			if ctx.Err() != nil {
				return nil
			}
			return c.in.Err()
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case commandQuit:
			return nil
		case commandNew:
			if err := c.confirmReset(ctx); err != nil {
				return err
			}
			continue
		}

		fmt.Fprintln(c.out, thinkingText)
		msg, err := c.session.Send(ctx, line)
		switch {
		case errors.Is(err, ErrBusy):
			fmt.Fprintln(c.out, "Still waiting for the previous reply.")
			continue
		case err != nil:
			return err
		}
		c.printMessage(msg)
	}
}

func (c *Console) confirmReset(ctx context.Context) error {
	token := c.history.RequestReset()
	fmt.Fprint(c.out, resetPrompt)

	answer, ok := c.readLine()
	if !ok {
		c.history.CancelReset()
		return c.in.Err()
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		if err := c.history.ConfirmReset(ctx, token); err != nil {
			return fmt.Errorf("confirm reset: %w", err)
		}
		fmt.Fprintln(c.out, "Conversation cleared.")
	default:
		c.history.CancelReset()
		fmt.Fprintln(c.out, "Kept the current conversation.")
	}
	return nil
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *Console) printMessage(msg history.Message) {
	label := "NutriSnap"
	if msg.Role == history.RoleUser {
		label = "You"
	}
	fmt.Fprintf(c.out, "%s: %s\n", label, msg.Text)
}
