package instagram

import "fmt"

// Outcome is the structured result every interaction returns. Variants never
// let an error escape their boundary: transport faults, rejected requests and
// unusable responses all fold into a failed Outcome with a message.
type Outcome struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

func success(format string, args ...interface{}) Outcome {
	return Outcome{Success: true, Message: fmt.Sprintf(format, args...)}
}

func failure(format string, args ...interface{}) Outcome {
	return Outcome{Success: false, Message: fmt.Sprintf(format, args...)}
}
