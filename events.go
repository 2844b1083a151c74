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
	"github.com/Gurux/gxcommon-go"
)

type eventKind uint8

const (
	evReceived eventKind = iota
	evSent
	evSendCompleted
	evPeerReset
	evFault
	evState
)

// event is a queued notification.
type event struct {
	kind  eventKind
	data  DataEventArgs
	ok    bool
	err   error
	state gxcommon.MediaState
	// slot is returned to the listen loop after the handler has run.
	slot *receiveSlot
}

func (ev *event) release() {
	if ev.slot != nil {
		ev.slot.release()
		ev.slot = nil
	}
}

// startDispatcher creates the notification queue and its worker on first use.
func (g *GXSocketClient) startDispatcher() {
	g.start.Do(func() {
		g.mu.RLock()
		size := g.queueSize
		g.mu.RUnlock()
		if size < 1 {
			size = 1
		}
		g.events = make(chan event, size)
		go g.dispatch()
	})
}

// post queues a notification raised by the listen loop. It waits while the
// queue is full and drops the notification if the client is disposed or stop
// is closed first.
func (g *GXSocketClient) post(stop <-chan struct{}, ev event) {
	if g.disposed.Load() {
		ev.release()
		return
	}
	g.startDispatcher()
	select {
	case g.events <- ev:
	case <-g.done:
		ev.release()
	case <-stop:
		ev.release()
	}
}

// enqueue adds a notification to the pending list and never blocks.
// Send, Connect and Disconnect use it so that handlers may call them.
func (g *GXSocketClient) enqueue(ev event) {
	if g.disposed.Load() {
		return
	}
	g.startDispatcher()
	g.pendingMu.Lock()
	g.pending = append(g.pending, ev)
	g.pendingMu.Unlock()
	select {
	case g.wake <- struct{}{}:
	default:
	}
}

func (g *GXSocketClient) dispatch() {
	for {
		select {
		case ev := <-g.events:
			g.handle(ev)
		case <-g.wake:
			g.pendingMu.Lock()
			pending := g.pending
			g.pending = nil
			g.pendingMu.Unlock()
			for _, ev := range pending {
				g.handle(ev)
			}
		case <-g.done:
			return
		}
	}
}

func (g *GXSocketClient) handle(ev event) {
	defer ev.release()
	if g.disposed.Load() {
		return
	}
	g.mu.RLock()
	onReceive, onSent, onSendCompleted := g.onReceive, g.onSent, g.onSendCompleted
	onPeerReset, onErr, onState := g.onPeerReset, g.onErr, g.onState
	g.mu.RUnlock()

	switch ev.kind {
	case evReceived:
		if onReceive != nil {
			onReceive(g, ev.data)
		}
	case evSent:
		if onSent != nil {
			onSent(g, ev.data)
		}
	case evSendCompleted:
		if onSendCompleted != nil {
			onSendCompleted(g, ev.ok)
		}
	case evPeerReset:
		if onPeerReset != nil {
			onPeerReset(g)
		}
	case evFault:
		if onErr != nil {
			onErr(g, ev.err)
		}
	case evState:
		if onState != nil {
			onState(g, *gxcommon.NewMediaStateEventArgs(ev.state))
		}
	}
}
