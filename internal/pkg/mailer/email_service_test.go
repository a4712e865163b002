package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelcomeMessage(t *testing.T) {
	s := NewEmailService("smtp.example.com", 587, "bot@example.com", "secret", "Study Assistant").(*emailService)

	m := s.welcomeMessage("ana@example.com", "<Ana>")

	assert.Equal(t, []string{"ana@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Welcome to your Study Assistant"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "&lt;Ana&gt;")
}

func TestNopEmailService(t *testing.T) {
	assert.NoError(t, NopEmailService{}.SendWelcome("a@b.c", "A"))
}
