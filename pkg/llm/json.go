package llm

import "bytes"

// StripCodeFence removes the ```json ... ``` wrapper models like to add.
func StripCodeFence(text string) []byte {
	b := bytes.TrimSpace([]byte(text))
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}
