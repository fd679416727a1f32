package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/creatorlink/config"
)

func TestGetMailgun_BuildsFromConfigOnce(t *testing.T) {
	SetConfig(&config.Config{MailgunDomain: "mg.test", MailgunAPIKey: "key", MailgunSender: "CreatorLink <no-reply@mg.test>"})
	SetMailgun(nil)
	t.Cleanup(func() { SetMailgun(nil); SetConfig(nil) })

	mg := GetMailgun()
	require.NotNil(t, mg)
	assert.Equal(t, "CreatorLink <no-reply@mg.test>", mg.Sender)
	assert.Same(t, mg, GetMailgun())
}
