package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNmcliAccessPoints(t *testing.T) {
	output := "AA\\:BB\\:CC\\:DD\\:EE\\:FF:80\n" +
		"F0\\:9F\\:C2\\:10\\:AB\\:CD:40\n" +
		"not-a-mac:55\n" +
		"11\\:22\\:33\\:44\\:55\\:66:weak\n"

	aps, err := parseNmcliAccessPoints(output)

	require.NoError(t, err)
	require.Len(t, aps, 2)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", aps[0].MACAddress)
	assert.Equal(t, -60.0, aps[0].SignalStrength)
	assert.Equal(t, "F0:9F:C2:10:AB:CD", aps[1].MACAddress)
	assert.Equal(t, -80.0, aps[1].SignalStrength)
}

func TestParseMmcliCellTower(t *testing.T) {
	output := `modem.location.3gpp.mcc : 724
modem.location.3gpp.mnc : 5
modem.location.3gpp.lac : 0000
modem.location.3gpp.tac : 00A1
modem.location.3gpp.cid : 01B2C3D4
modem.location.gps.utc : --
`
	towers, err := parseMmcliCellTower(output)

	require.NoError(t, err)
	require.Len(t, towers, 1)
	assert.Equal(t, 724, towers[0].MobileCountryCode)
	assert.Equal(t, 5, towers[0].MobileNetworkCode)
	assert.Equal(t, 0xA1, towers[0].LocationAreaCode)
	assert.Equal(t, 0x01B2C3D4, towers[0].CellID)

	_, err = parseMmcliCellTower("modem.location.3gpp.mcc : 724\n")
	assert.Error(t, err)
}

func TestIsValidMAC(t *testing.T) {
	assert.True(t, isValidMAC("00:14:22:01:23:45"))
	assert.True(t, isValidMAC("FF:FF:FF:FF:FF:FF"))
	assert.False(t, isValidMAC("00:14:22:01:23"))
	assert.False(t, isValidMAC("00:14:22:01:23:4G"))
}
