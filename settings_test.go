package gxsocket

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings(t *testing.T) {
	c := NewGXSocketClient(net.ParseIP("192.168.1.10"), 4059, 2048)
	require.NoError(t, c.SetTimeout(5000))
	c.SetKeepAlive(true)
	c.SetNoDelay(false)

	settings := c.GetSettings()
	assert.Contains(t, settings, "<IP>192.168.1.10</IP>")
	assert.Contains(t, settings, "<Port>4059</Port>")

	g, err := NewGXSocketClientFromSettings(settings)
	require.NoError(t, err)
	assert.Equal(t, c.String(), g.String())
	assert.Equal(t, 2048, g.BufferSize())
	assert.Equal(t, uint32(5000), g.GetTimeout())
	assert.Equal(t, settings, g.GetSettings())
}

func TestSettingsDefaults(t *testing.T) {
	g, err := NewGXSocketClientFromSettings("<IP>::1</IP><Port>4061</Port>")
	require.NoError(t, err)
	assert.Equal(t, DefaultBufferSize, g.BufferSize())
	assert.Equal(t, uint32(DefaultTimeout), g.GetTimeout())
	assert.Equal(t, "[::1]:4061", g.String())
	assert.Equal(t, "<IP>::1</IP>\n<Port>4061</Port>\n", g.GetSettings())
}

func TestSettingsInvalid(t *testing.T) {
	_, err := NewGXSocketClientFromSettings("<IP>localhost</IP><Port>4061</Port>")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = NewGXSocketClientFromSettings("<IP>127.0.0.1</IP><Port>x</Port>")
	assert.ErrorIs(t, err, ErrInvalidPort)

	_, err = NewGXSocketClientFromSettings("<IP>127.0.0.1</IP>")
	assert.ErrorIs(t, err, ErrInvalidPort)

	_, err = NewGXSocketClientFromSettings("<IP>127.0.0.1</IP><Port>1</Port><BufferSize>0</BufferSize>")
	assert.ErrorIs(t, err, ErrInvalidBufferSize)

	_, err = NewGXSocketClientFromSettings("<IP>127.0.0.1")
	assert.Error(t, err)
}
