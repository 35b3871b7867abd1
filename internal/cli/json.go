package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// jsonOutput is set by the global --json flag.
var jsonOutput bool

// errHandled signals that the error was already printed as a JSON envelope.
var errHandled = errors.New("handled")

// isJSONOutput reports whether machine-readable output was requested.
func isJSONOutput() bool {
	return jsonOutput
}

// outputSuccess prints a success envelope in JSON mode.
func outputSuccess(data any) {
	envelope := map[string]any{
		"success": true,
		"data":    data,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(envelope)
}

// handleError reports a failure with its stable code. In JSON mode it prints
// an error envelope and suppresses cobra's own message; otherwise it returns
// an error carrying the hint.
func handleError(code string, err error, hint string) error {
	if isJSONOutput() {
		envelope := map[string]any{
			"success": false,
			"error": map[string]any{
				"code":    code,
				"message": err.Error(),
			},
		}
		if hint != "" {
			envelope["error"].(map[string]any)["hint"] = hint
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(envelope)
		return errHandled
	}
	if hint != "" {
		return fmt.Errorf("%w\n\n%s", err, hint)
	}
	return err
}
