//go:build linux

package mute

func muteCommand(on bool) []string {
	state := "0"
	if on {
		state = "1"
	}
	return []string{"pactl", "set-sink-mute", "@DEFAULT_SINK@", state}
}
