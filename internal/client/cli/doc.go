// Package cli provides the interactive social CLI.
//
// It wires configuration, the keypair file, the snapshot cache, the node
// client and an interactive REPL that keeps working offline. Typical flow:
// log in with the keypair file, start a background connectivity watcher,
// and execute user commands.
//
// Key features:
//   - Register / Login / Logout (online with offline fallback)
//   - Add and remove friends, set the online status
//   - Show the decoded state account (cached snapshot when offline)
//   - Export the state account through object storage
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
