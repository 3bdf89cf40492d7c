package internal

import (
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults_And_Required(t *testing.T) {
	req := require.New(t)

	// Given only the required keys
	environ := env.EnvSet{
		"BADGER_FILEPATH": "/tmp/relay",
		"MESSAGE_SECRET":  "message-secret",
		"JWT_SECRET":      "jwt-secret",
		"CENSORED_WORDS":  "darn, heck",
	}

	var config Config
	err := env.Unmarshal(environ, &config)

	req.NoError(err)
	req.Equal(8080, config.Port)
	req.Equal(24*time.Hour, config.AuthTokenDuration)
	req.Equal("General", config.GroupName)
	req.Equal([]string{"darn", " heck"}, config.ExtraCensoredWords())

	// And a missing secret is refused
	delete(environ, "JWT_SECRET")
	err = env.Unmarshal(environ, &Config{})
	req.Error(err)
}

func TestCharacterRune(t *testing.T) {
	req := require.New(t)

	r, err := CharacterRune("#")
	req.NoError(err)
	req.Equal('#', r)

	_, err = CharacterRune("##")
	req.Error(err)
}
