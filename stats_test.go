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
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSendStats(t *testing.T) {
	s := newSendStats()
	var st Statistics
	s.fill(&st)
	assert.Equal(t, int64(0), st.Sends)
	assert.Equal(t, time.Duration(0), st.SendLatencyMax)

	s.record(100*time.Microsecond, nil)
	s.record(300*time.Microsecond, errors.New("broken pipe"))
	s.record(time.Hour, nil)
	s.fill(&st)
	assert.Equal(t, int64(3), st.Sends)
	assert.Equal(t, int64(1), st.SendFailures)
	assert.Equal(t, 100*time.Microsecond, st.SendLatencyMin)
	assert.InDelta(t, float64(time.Minute), float64(st.SendLatencyMax), float64(time.Minute)/100)

	s.reset()
	st = Statistics{}
	s.fill(&st)
	assert.Equal(t, int64(0), st.Sends)
	assert.Equal(t, int64(0), st.SendFailures)
}

func TestResetStats(t *testing.T) {
	c := NewGXSocketClient(net.IPv4(127, 0, 0, 1), 4059, 16)
	c.bytesSent.Store(10)
	c.bytesReceived.Store(20)
	c.stats.record(time.Millisecond, nil)

	st := c.Stats()
	assert.Equal(t, uint64(10), st.BytesSent)
	assert.Equal(t, uint64(20), st.BytesReceived)
	assert.Equal(t, int64(1), st.Sends)

	c.ResetStats()
	st = c.Stats()
	assert.Equal(t, uint64(0), st.BytesSent)
	assert.Equal(t, uint64(0), st.BytesReceived)
	assert.Equal(t, int64(0), st.Sends)
}
