// Package cli implements the interactive authkeeper shell.
//
// The shell reads one command per line and prompts for any further input it
// needs. Commands:
//
//	register | 1   create an account (username, password, role)
//	login    | 2   authenticate and start a session
//	logout         end the current session
//	whoami         show the user behind the current session
//	strength       classify a password without storing it
//	migrate        copy users.txt into the SQLite database
//	help           list commands
//	exit | quit | 3
//
// Passwords are read without echo when stdin is a terminal.
package cli
