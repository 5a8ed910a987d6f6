package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// validatePassword enforces the scorer password policy.
func validatePassword(p string) error {
	if n := utf8.RuneCountInString(p); n < 8 || n > 72 {
		return errors.New("password must be 8-72 chars")
	}
	return nil
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost) // cost=10
	return string(b), err
}

// runHashPassword prints a bcrypt hash for SCORER_PASSWORD_HASH.
// The password comes from args[0], or the first line of in when absent.
func runHashPassword(args []string, in io.Reader, out io.Writer) error {
	var pw string
	if len(args) > 0 {
		pw = args[0]
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		pw = strings.TrimRight(line, "\r\n")
	}
	if err := validatePassword(pw); err != nil {
		return err
	}
	h, err := hashPassword(pw)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = fmt.Fprintln(out, h)
	return err
}
