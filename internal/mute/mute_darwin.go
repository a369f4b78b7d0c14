//go:build darwin

package mute

func muteCommand(on bool) []string {
	state := "false"
	if on {
		state = "true"
	}
	return []string{"osascript", "-e", "set volume output muted " + state}
}
