// Package cli provides the interactive suimirror command-line client.
//
// It wires configuration, the local state database, the HTTP gateway and the
// services around one in-memory mirror of the panel, then runs a REPL.
// Typical flow: log in, let the initial load complete, then inspect the
// mirror, submit changes and manage nodes, API keys and the webhook.
//
// Key features:
//   - Login / Logout (the last user name is remembered locally)
//   - Incremental refresh, manual or on a timer (-i)
//   - Uniqueness checks for client names and tags before saving
//   - Node, node token, API key and webhook management
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command set.
package cli
