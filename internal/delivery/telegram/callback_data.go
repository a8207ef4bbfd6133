package telegram

import (
	"strings"
)

// Callback action constants.
const (
	actionOption  = "opt"
	actionConfirm = "confirm"
	actionPlay    = "play"
	actionQuit    = "quit"
	actionNoop    = "noop"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// buildOptionCallback builds callback data for selecting an option.
func buildOptionCallback(choice string) string {
	return callbackData{
		Action: actionOption,
		Params: []string{choice},
	}.encode()
}

func buildConfirmCallback() string {
	return actionConfirm
}

// buildPlayCallback builds callback data for starting a new game.
func buildPlayCallback() string {
	return actionPlay
}

func buildQuitCallback() string {
	return actionQuit
}

// buildNoopCallback builds callback data for buttons that do nothing.
func buildNoopCallback() string {
	return actionNoop
}
