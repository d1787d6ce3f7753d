// Package main provides the media control plugin for macOS.
// It drives playback, volume and player focus via AppleScript.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action string          `json:"action"`
	Params json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// FocusParams identifies the player application and its web fallback.
type FocusParams struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// actionHandler handles one action given its raw params.
type actionHandler func(params json.RawMessage) error

// actionHandlers maps action names to their handler functions.
var actionHandlers = map[string]actionHandler{
	"media-next":       keyCode(101),
	"media-prev":       keyCode(98),
	"media-play-pause": keyCode(100),
	"volume-up":        script(`set volume output volume ((output volume of (get volume settings)) + 10)`),
	"volume-down":      script(`set volume output volume ((output volume of (get volume settings)) - 10)`),
	"volume-mute":      script(`set volume output muted (not (output muted of (get volume settings)))`),
	"player-focus":     focusPlayer,
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(Response{Error: fmt.Sprintf("failed to decode request: %v", err)})
		return
	}

	handler, ok := actionHandlers[req.Action]
	if !ok {
		writeResponse(Response{Error: fmt.Sprintf("unknown action: %s", req.Action)})
		return
	}

	if err := handler(req.Params); err != nil {
		writeResponse(Response{Error: fmt.Sprintf("action %s failed: %v", req.Action, err)})
		return
	}

	writeResponse(Response{Success: true})
}

// keyCode presses a media key through System Events.
func keyCode(code int) actionHandler {
	return script(fmt.Sprintf("tell application \"System Events\"\n\tkey code %d\nend tell", code))
}

func script(source string) actionHandler {
	return func(json.RawMessage) error {
		return runAppleScript(source)
	}
}

// focusPlayer activates the player if it is running, otherwise opens its URL.
func focusPlayer(params json.RawMessage) error {
	var p FocusParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return fmt.Errorf("failed to parse params: %w", err)
		}
	}
	if p.Name == "" && p.URL == "" {
		return fmt.Errorf("name or url is required")
	}

	if p.Name != "" {
		name := strings.ReplaceAll(p.Name, `"`, ``)
		running := fmt.Sprintf(`application "%s" is running`, name)
		out, err := exec.Command("osascript", "-e", running).Output()
		if err == nil && strings.TrimSpace(string(out)) == "true" {
			return runAppleScript(fmt.Sprintf(`tell application "%s" to activate`, name))
		}
	}

	if p.URL == "" {
		return fmt.Errorf("%s is not running", p.Name)
	}
	output, err := exec.Command("open", p.URL).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

func writeResponse(resp Response) {
	json.NewEncoder(os.Stdout).Encode(resp)
}

// runAppleScript executes an AppleScript command and returns any error.
func runAppleScript(source string) error {
	cmd := exec.Command("osascript", "-e", source)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}
