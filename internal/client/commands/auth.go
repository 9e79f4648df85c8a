package commands

import (
	"fmt"
	"syscall"
	"time"

	"blunderlog/internal/client/display"

	"golang.org/x/term"
)

func (r *Registry) registerAuthCommands() {
	r.Register(&Command{
		Name:        "login",
		ShortName:   "l",
		Description: "Authenticate with the journal passphrase",
		Usage:       "login",
		Handler:     loginHandler,
	})

	r.Register(&Command{
		Name:        "logout",
		Description: "Clear authentication",
		Usage:       "logout",
		Handler:     logoutHandler,
	})
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(bytePassword), nil
}

func loginHandler(s Session, args []string) error {
	passphrase, err := readPassword(display.Yellow + "Passphrase: " + display.Reset)
	if err != nil {
		return err
	}

	resp, err := s.GetClient().Login(passphrase)
	if err != nil {
		return err
	}

	s.SetAuthToken(resp.Token)
	expires := time.Unix(resp.ExpiresAt, 0)
	fmt.Printf("%sLogged in, session valid until %s%s\n",
		display.Green, expires.Format("2006-01-02 15:04"), display.Reset)
	return nil
}

func logoutHandler(s Session, args []string) error {
	s.SetAuthToken("")
	fmt.Printf("%sLogged out%s\n", display.Cyan, display.Reset)
	return nil
}
