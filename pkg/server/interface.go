/*
Package server exposes the seed phrase detector over msgpack IPC.

Clients write msgpack encoded requests to the process stdin and read one
msgpack encoded response per request from stdout. Requests are handled
synchronously in arrival order.

# IPC

On start the server writes a ready marker:

	{"status": "ready"}

A check request carries an id and the text to classify. The action may be
omitted:

	{"id": "req_001", "action": "check", "t": "abandon ability able ..."}

The response reports the classification, the strategy that fired, the
extracted phrases, token and hit counts and the time taken in microseconds:

	{"id": "req_001", "c": true, "s": "contiguous", "p": ["abandon ability ..."], "n": 12, "h": 12, "t": 41}

Dictionary and threshold information:

	{"id": "info_001", "action": "info"}
	{"id": "info_001", "status": "ok", "words": 2048, "min_seed_words": 12}

Liveness:

	{"id": "ping", "action": "health"}
	{"id": "ping", "status": "ok"}

Errors carry the request id, a message and an HTTP-like code:

	{"id": "req_002", "e": "text exceeds maximum length of 10000 characters", "c": 413}

Codes: 400 bad request, 413 text too long, 503 detection disabled.
*/
package server

// Request is any incoming message.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"` // "check" (default), "info", "health"
	Text   string `msgpack:"t,omitempty"`
}

// CheckResponse is the classification of one text.
type CheckResponse struct {
	ID        string   `msgpack:"id"`
	Candidate bool     `msgpack:"c"`
	Strategy  string   `msgpack:"s"`
	Phrases   []string `msgpack:"p"`
	Tokens    int      `msgpack:"n"`
	Hits      int      `msgpack:"h"`
	TimeTaken int64    `msgpack:"t"`
}

// InfoResponse describes the loaded dictionary and thresholds.
type InfoResponse struct {
	ID           string `msgpack:"id"`
	Status       string `msgpack:"status"`
	Words        int    `msgpack:"words"`
	MinSeedWords int    `msgpack:"min_seed_words"`
}

// StatusResponse is the ready marker and health answer.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
