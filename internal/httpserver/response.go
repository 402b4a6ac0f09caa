package httpserver

// Envelope is the JSON body of every menu response. The CLI prints the same
// shape in --json mode.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
}

// Success returns an envelope carrying dishes. dishes is never omitted, so
// an empty menu encodes as "data": [].
func Success(dishes []string, message string) Envelope {
	if dishes == nil {
		dishes = []string{}
	}
	return Envelope{Success: true, Message: message, Data: dishes}
}

// SuccessWithCount is Success plus the number of dishes returned.
func SuccessWithCount(dishes []string) Envelope {
	env := Success(dishes, "")
	n := len(dishes)
	env.Count = &n
	return env
}

// Failure returns an error envelope. refresh tells the client its copy of
// the menu is stale.
func Failure(message string, refresh bool) Envelope {
	return Envelope{Success: false, Message: message, Refresh: refresh}
}
