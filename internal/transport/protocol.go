package transport

import "encoding/json"

// Request is the generic envelope of spec.md §6: {"kind": <string>, ...args}.
// Grounded on the teacher's ipc/protocol.go Request/Response shape, but
// generalized from a closed Go struct-per-command set to a raw-args map,
// since spec.md's kind catalog is driven by the dispatcher's handler table
// rather than typed payload structs.
type Request struct {
	Kind string
	Args map[string]json.RawMessage
}

// DecodeRequest parses one frame payload as a request envelope, per
// spec.md §4.6 step 2 (object with string "kind").
func DecodeRequest(payload []byte) (Request, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Request{}, err
	}
	kindRaw, ok := raw["kind"]
	if !ok {
		return Request{}, errMissingKind
	}
	var kind string
	if err := json.Unmarshal(kindRaw, &kind); err != nil {
		return Request{}, errMissingKind
	}
	delete(raw, "kind")
	return Request{Kind: kind, Args: raw}, nil
}

var errMissingKind = &missingKindError{}

type missingKindError struct{}

func (*missingKindError) Error() string { return "missing or non-string \"kind\"" }

// Arg unmarshals the named argument into dst; returns false if absent.
func (r Request) Arg(name string, dst any) (bool, error) {
	raw, ok := r.Args[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, err
	}
	return true, nil
}

// Response is the generic {"status": "ok"|"err", ...} envelope.
type Response map[string]any

func OK(fields map[string]any) Response {
	r := Response{"status": "ok"}
	for k, v := range fields {
		r[k] = v
	}
	return r
}

func Err(reason string) Response {
	return Response{"status": "err", "reason": reason}
}

func EncodeResponse(r Response) ([]byte, error) {
	return json.Marshal(r)
}

// Greeting is the one-shot message sent immediately on accept.
type Greeting struct {
	Version string `json:"version"`
}
