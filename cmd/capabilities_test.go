package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rzdio/internal/bridge"
)

func TestCapabilities_Table(t *testing.T) {
	stdout, _, err := runRoot(t, "channel: demo_channel\n", "capabilities")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Channel demo_channel")
	assert.Contains(t, stdout, "METHOD")
	assert.Contains(t, stdout, "getPlatformVersion")
	assert.Contains(t, stdout, "getPlatformInfo")
}

func TestCapabilities_ChannelFlagOverridesConfig(t *testing.T) {
	stdout, _, err := runRoot(t, "channel: demo_channel\n", "capabilities", "--channel", "other_channel")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Channel other_channel")
}

func TestCapabilities_JSON(t *testing.T) {
	stdout, _, err := runRoot(t, "", "capabilities", "--json")
	require.NoError(t, err)

	var infos []bridge.CapabilityInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, "getPlatformInfo", infos[0].Name)
	assert.Equal(t, "getPlatformVersion", infos[1].Name)
}

func TestFormatParameters(t *testing.T) {
	assert.Equal(t, "-", formatParameters(nil))
	assert.Equal(t, "text:string*, count:number", formatParameters([]bridge.Parameter{
		{Name: "text", Type: bridge.TypeString, Required: true},
		{Name: "count", Type: bridge.TypeNumber},
	}))
}
