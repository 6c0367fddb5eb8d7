// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package credentials acquires the destination-service login interactively.
// The pipeline itself takes already-resolved credentials; only this package
// touches the terminal, so everything downstream is testable with fakes.
package credentials

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Credentials is a resolved identifier/secret pair for the destination
// service. The secret may be an application-specific password for accounts
// with two-factor enabled. Never persisted.
type Credentials struct {
	Email    string
	Password string
}

// Prompter reads operator input. ReadSecret must not echo when the input
// is a terminal.
type Prompter interface {
	ReadLine(prompt string) (string, error)
	ReadSecret(prompt string) (string, error)
}

// Ask collects credentials through p. When presetEmail is non-empty (from
// config) only the password is prompted for.
func Ask(p Prompter, presetEmail string) (Credentials, error) {
	email := presetEmail
	if email == "" {
		var err error
		email, err = p.ReadLine("Enter your Google email: ")
		if err != nil {
			return Credentials{}, fmt.Errorf("reading email: %w", err)
		}
	}
	if email == "" {
		return Credentials{}, fmt.Errorf("no email provided")
	}

	password, err := p.ReadSecret("Enter your Google password (or App Password): ")
	if err != nil {
		return Credentials{}, fmt.Errorf("reading password: %w", err)
	}
	if password == "" {
		return Credentials{}, fmt.Errorf("no password provided")
	}

	return Credentials{Email: email, Password: password}, nil
}

// TerminalPrompter reads from an input file (normally os.Stdin) and writes
// prompts to Out. Secrets are read without echo when In is a terminal;
// otherwise it falls back to plain line reading, which covers piped input
// and tests.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer

	// reader is shared across calls so buffered input is not lost
	// between prompts when In is not a terminal.
	reader *bufio.Reader
}

// NewTerminalPrompter returns a prompter bound to stdin/stdout.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stdout}
}

func (p *TerminalPrompter) buffered() *bufio.Reader {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	return p.reader
}

// ReadLine prints prompt and returns one trimmed input line.
func (p *TerminalPrompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.Out, prompt)
	line, err := p.buffered().ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadSecret prints prompt and reads a secret without echoing it. The
// non-terminal fallback strips only the line ending, so a password with
// leading or trailing spaces survives piped input the same way it would
// terminal entry.
func (p *TerminalPrompter) ReadSecret(prompt string) (string, error) {
	fmt.Fprint(p.Out, prompt)
	fd := int(p.In.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}

	line, err := p.buffered().ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
