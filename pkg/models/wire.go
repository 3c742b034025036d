package models

import "time"

// VerifyRequest is the payload for the license check endpoint
type VerifyRequest struct {
	MachineID string `json:"machine_id"`
}

// VerifyResponse carries the license verdict. The endpoint always returns
// a structurally valid body, never an error status.
type VerifyResponse struct {
	Allowed bool `json:"allowed"`
}

// AnalyzeResponse carries the answer for an uploaded screenshot. All
// business-logic failures (unauthorized device, undecodable image, no text,
// upstream AI errors) are encoded in Answer with an HTTP success status.
type AnalyzeResponse struct {
	Answer string `json:"answer"`
}

// AnswerEvent is broadcast on the /events WebSocket after each analyze call
type AnswerEvent struct {
	ID        string    `json:"id"`
	MachineID string    `json:"machineId"` // truncated prefix, never the full identifier
	Answer    string    `json:"answer"`
	At        time.Time `json:"at"`
}
