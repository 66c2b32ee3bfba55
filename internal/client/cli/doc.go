// Package cli is the contractlens command-line client.
//
// It wires configuration, the local session store, the HTTP pipeline and the
// services into a cobra command tree:
//
//	contractlens [contracts [list]]      the dashboard
//	contractlens contracts show <id>
//	contractlens contracts upload <path>
//	contractlens contracts analyze <id>
//	contractlens login | register | logout | whoami
//	contractlens shell                   interactive REPL
//	contractlens version
//
// The root pre-run hook restores the persisted session before any command
// body runs. Protected commands pass through a route guard: one-shot
// commands fail with "not logged in", the shell prompts for a login. When
// the backend rejects the credential the pipeline clears the session and the
// App prints an alert; the shell then asks for a login before the next prompt.
package cli
