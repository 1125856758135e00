package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":    "9090",
		"BAD_INT": "nine",
		"EMPTY":   "",
		"FLAG":    " true ",
		"ORIGINS": "http://a, ,http://b ",
		"APP_ENV": "Development",
	}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, 9090, GetInt(c, "PORT", 1))
	assert.Equal(t, 1, GetInt(c, "BAD_INT", 1))
	assert.True(t, GetBool(c, "FLAG", false))
	assert.True(t, GetBool(c, "MISSING", true))
	assert.Equal(t, []string{"http://a", "http://b"}, GetList(c, "ORIGINS"))
	assert.Nil(t, GetList(c, "MISSING"))
	assert.True(t, IsDevelopment(c))
	assert.False(t, IsDevelopment(nil))
	assert.Equal(t, "x", GetString(nil, "PORT", "x"))
}

func TestNewMergesConfigFileUnderEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 7000\nlogin_rate_limit: 5-M\ndb:\n  type: sqlite\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7001")

	c := New()
	assert.Equal(t, "7001", c["PORT"])
	assert.Equal(t, "5-M", c["LOGIN_RATE_LIMIT"])
	assert.Equal(t, "sqlite", c["DB_TYPE"])
}

type fakeSSM struct {
	value string
	err   error
	name  string
}

func (f *fakeSSM) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.name = aws.ToString(params.Name)
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(f.value)}}, nil
}

func TestResolveSecret(t *testing.T) {
	ctx := context.Background()

	plain, err := ResolveSecret(ctx, map[string]string{"ADMIN_PASSWORD": "pw"}, "ADMIN_PASSWORD", nil)
	require.NoError(t, err)
	assert.Equal(t, "pw", plain)

	client := &fakeSSM{value: "from-ssm"}
	c := map[string]string{"ADMIN_PASSWORD": "pw", "ADMIN_PASSWORD_SSM_PARAM": "/catalog/admin"}
	resolved, err := ResolveSecret(ctx, c, "ADMIN_PASSWORD", client)
	require.NoError(t, err)
	assert.Equal(t, "from-ssm", resolved)
	assert.Equal(t, "/catalog/admin", client.name)

	_, err = ResolveSecret(ctx, c, "ADMIN_PASSWORD", nil)
	assert.Error(t, err)

	_, err = ResolveSecret(ctx, c, "ADMIN_PASSWORD", &fakeSSM{err: errors.New("denied")})
	assert.ErrorContains(t, err, "denied")
}
