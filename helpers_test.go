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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const waitTimeout = 5 * time.Second

// testPeer is a loopback server the client under test connects to.
type testPeer struct {
	ln    *net.TCPListener
	conns chan *net.TCPConn
	done  chan struct{}
	eg    errgroup.Group
}

func newTestPeer(t *testing.T) *testPeer {
	t.Helper()
	ln, err := net.ListenTCP("tcp4", &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	p := &testPeer{ln: ln, conns: make(chan *net.TCPConn, 8), done: make(chan struct{})}
	p.eg.Go(func() error {
		for {
			c, err := ln.AcceptTCP()
			if err != nil {
				return nil
			}
			select {
			case p.conns <- c:
			case <-p.done:
				_ = c.Close()
				return nil
			}
		}
	})
	t.Cleanup(func() {
		close(p.done)
		_ = ln.Close()
		_ = p.eg.Wait()
		close(p.conns)
		for c := range p.conns {
			_ = c.Close()
		}
	})
	return p
}

func (p *testPeer) addr() *net.TCPAddr {
	return p.ln.Addr().(*net.TCPAddr)
}

func (p *testPeer) client(t *testing.T, bufferSize int) *GXSocketClient {
	t.Helper()
	c := NewGXSocketClient(p.addr().IP, p.addr().Port, bufferSize)
	t.Cleanup(func() {
		_ = c.Close()
	})
	return c
}

func (p *testPeer) accept(t *testing.T) *net.TCPConn {
	t.Helper()
	select {
	case c := <-p.conns:
		t.Cleanup(func() {
			_ = c.Close()
		})
		return c
	case <-time.After(waitTimeout):
		t.Fatal("peer did not accept a connection")
	}
	return nil
}

type received struct {
	data   []byte
	offset int
	bufLen int
}

// observer collects every notification of a client.
type observer struct {
	received  chan received
	sent      chan int
	completed chan bool
	reset     chan struct{}
	faults    chan error

	mu    sync.Mutex
	order []string
}

func observe(c *GXSocketClient) *observer {
	o := &observer{
		received:  make(chan received, 256),
		sent:      make(chan int, 256),
		completed: make(chan bool, 256),
		reset:     make(chan struct{}, 8),
		faults:    make(chan error, 8),
	}
	c.SetOnReceived(func(c *GXSocketClient, e DataEventArgs) {
		data := make([]byte, e.Count)
		copy(data, e.Data())
		o.received <- received{data: data, offset: e.Offset, bufLen: len(e.Buffer)}
	})
	c.SetOnSent(func(c *GXSocketClient, e DataEventArgs) {
		o.record("sent")
		o.sent <- e.Count
	})
	c.SetOnSendCompleted(func(c *GXSocketClient, ok bool) {
		o.record("completed")
		o.completed <- ok
	})
	c.SetOnPeerReset(func(c *GXSocketClient) {
		o.reset <- struct{}{}
	})
	c.SetOnError(func(c *GXSocketClient, err error) {
		o.faults <- err
	})
	return o
}

func (o *observer) record(kind string) {
	o.mu.Lock()
	o.order = append(o.order, kind)
	o.mu.Unlock()
}

func (o *observer) snapshot() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.order...)
}

func waitFor[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for notification")
	}
	var zero T
	return zero
}

func expectNone[T any](t *testing.T, ch <-chan T, d time.Duration) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected notification: %v", v)
	case <-time.After(d):
	}
}
