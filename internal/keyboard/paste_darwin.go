//go:build darwin

package keyboard

import "github.com/micmonay/keybd_event"

const (
	pasteKey     = keybd_event.VK_V
	backspaceKey = keybd_event.VK_DELETE
)

func setPasteModifier(kb *keybd_event.KeyBonding) {
	kb.HasSuper(true)
}
