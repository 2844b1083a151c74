// Package gxsocket provides an event driven TCP client for Gurux components.
// The client owns one connection to one remote endpoint, keeps a receive
// permanently outstanding and sends asynchronously. Results are reported
// through handlers instead of return values.
//
// Features
//
//   - Connect: bounded wait (10 s by default), boolean or error result.
//   - Receive: one read always outstanding, double buffered, no framing.
//   - Send: fire and forget; a submission notification and a separate
//     completion notification.
//   - Events: Received, Sent, SendCompleted, PeerReset, Error, MediaState
//     and Trace callbacks.
//   - Statistics: byte counters and send latency percentiles.
//
// # Construction
//
// Use NewGXSocketClient with the remote address, port and receive buffer size.
//
// Example
//
//	c := gxsocket.NewGXSocketClient(net.ParseIP("127.0.0.1"), 4059, 1024)
//	defer c.Close()
//
//	c.SetOnReceived(func(c *gxsocket.GXSocketClient, e gxsocket.DataEventArgs) {
//	    // e.Data() is valid only until the handler returns.
//	})
//	c.SetOnSendCompleted(func(c *gxsocket.GXSocketClient, ok bool) {
//	})
//	c.SetOnPeerReset(func(c *gxsocket.GXSocketClient) {
//	})
//
//	if !c.Connect() {
//	    // unreachable or timed out
//	}
//	c.Send([]byte{0x01, 0x02, 0x03})
//
// # Notifications
//
// Handlers run one at a time on a goroutine owned by the client. A slow
// handler delays the following notifications; once the receive queue is full
// the receive loop waits for it. Send, Connect and Disconnect never wait for
// handlers, so handlers may call them. The sent notification of a request is
// always delivered before its send completed notification, and received data
// before the peer reset that follows it.
//
// Received data aliases one of the two receive buffers. The buffer is not read
// into again until the handler returns, but it is after that, so copy what
// must be kept.
//
// # Errors
//
// Connect failures are returned from Open (Connect only reports false).
// Receive faults are delivered to the Error handler as *SocketError, peer
// close or reset to the PeerReset handler. Send failures are reported only as
// false to the SendCompleted handler. Nothing is retried.
//
// # Notes
//
// The zero value of GXSocketClient is not ready for use; always construct via
// NewGXSocketClient. After Close no handler is called and the client can not
// be connected again.
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

