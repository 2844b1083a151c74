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

	"github.com/Gurux/gxcommon-go"
)

// receiveSlots is the pair of buffers the listen loop alternates between.
// A slot is read into again only after the handler that received it returned.
type receiveSlots struct {
	slots [2]receiveSlot
	free  chan *receiveSlot
}

type receiveSlot struct {
	buf  []byte
	free chan<- *receiveSlot
}

func newReceiveSlots(size int) *receiveSlots {
	r := &receiveSlots{free: make(chan *receiveSlot, 2)}
	for i := range r.slots {
		r.slots[i] = receiveSlot{buf: make([]byte, size), free: r.free}
		r.free <- &r.slots[i]
	}
	return r
}

// acquire waits for a free slot. It returns nil when stop is closed.
func (r *receiveSlots) acquire(stop <-chan struct{}) *receiveSlot {
	select {
	case s := <-r.free:
		return s
	case <-stop:
		return nil
	}
}

func (s *receiveSlot) release() {
	s.free <- s
}

// listen keeps one read outstanding on the session until it fails.
func (g *GXSocketClient) listen(s *session) {
	defer g.wg.Done()
	defer s.listening.Store(false)
	for {
		slot := s.slots.acquire(s.stop)
		if slot == nil {
			return
		}
		n, err := s.conn.Read(slot.buf)
		if n > 0 {
			g.bytesReceived.Add(uint64(n))
			e := DataEventArgs{Buffer: slot.buf, Offset: 0, Count: n}
			g.tracef(gxcommon.TraceTypesReceived, "RX: %s", e)
			g.post(s.stop, event{kind: evReceived, data: e, slot: slot})
		} else {
			slot.release()
		}
		if err != nil {
			g.receiveFailed(s, err)
			return
		}
	}
}

func (g *GXSocketClient) receiveFailed(s *session, err error) {
	if s.stopped() || errors.Is(err, net.ErrClosed) {
		return
	}
	if isPeerReset(err) {
		g.mu.Lock()
		current := g.sess == s
		if current {
			g.sess = nil
			g.state = ConnectionStateClosed
		}
		g.mu.Unlock()
		_ = s.close()
		g.trace(gxcommon.TraceTypesInfo, g.printer().Sprintf("msg.peer_reset", g.endpoint.String()))
		g.post(nil, event{kind: evPeerReset})
		if current {
			g.post(nil, event{kind: evState, state: ConnectionStateClosed.mediaState()})
		}
		return
	}
	serr := newSocketError("read", err)
	g.trace(gxcommon.TraceTypesError, g.printer().Sprintf("msg.receive_failed", serr))
	g.post(s.stop, event{kind: evFault, err: serr})
}
