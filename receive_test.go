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
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiveSlots(t *testing.T) {
	r := newReceiveSlots(8)
	stop := make(chan struct{})

	a := r.acquire(stop)
	b := r.acquire(stop)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotSame(t, a, b)
	assert.Len(t, a.buf, 8)
	assert.Len(t, b.buf, 8)

	// Both slots are owned; the next acquire only returns when stopped.
	close(stop)
	assert.Nil(t, r.acquire(stop))

	a.release()
	assert.Same(t, a, r.acquire(make(chan struct{})))
}

func TestEventReleaseOnce(t *testing.T) {
	r := newReceiveSlots(1)
	slot := r.acquire(nil)
	ev := event{kind: evReceived, slot: slot}
	ev.release()
	ev.release()
	assert.Len(t, r.free, 2)
}

func TestReceiveFault(t *testing.T) {
	p := newTestPeer(t)
	c := p.client(t, 16)
	o := observe(c)

	require.True(t, c.Connect())
	p.accept(t)

	// Replace the live connection with one whose listen loop is not running.
	conn, err := net.DialTCP("tcp4", nil, p.addr())
	require.NoError(t, err)
	peer := p.accept(t)
	s := newSession(conn, 16)
	c.mu.Lock()
	prev := c.sess
	c.sess = s
	c.mu.Unlock()
	_ = prev.close()

	c.receiveFailed(s, &net.OpError{Op: "read", Net: "tcp", Err: os.NewSyscallError("read", syscall.ETIMEDOUT)})
	fault := waitFor(t, o.faults)
	var serr *SocketError
	require.True(t, errors.As(fault, &serr))
	assert.Equal(t, "read", serr.Op)
	assert.Equal(t, syscall.ETIMEDOUT, serr.Code)
	expectNone(t, o.reset, 100*time.Millisecond)
	assert.Equal(t, ConnectionStateConnected, c.State())
	assert.False(t, s.listening.Load())

	c.Listen()
	assert.True(t, s.listening.Load())
	_, err = peer.Write([]byte{0x09})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x09}, waitFor(t, o.received).data)
}
