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
	"fmt"

	"github.com/Gurux/gxcommon-go"
)

// DataEventArgs describes a byte range handed to a data notification.
type DataEventArgs struct {
	// Buffer is the whole buffer the operation used.
	Buffer []byte
	// Offset is the index of the first transferred byte in Buffer.
	Offset int
	// Count is the number of transferred bytes.
	Count int
}

// Data returns the transferred bytes.
//
// For received data the slice aliases the receive slot and is valid only until
// the handler returns. Copy what must be kept.
func (e DataEventArgs) Data() []byte {
	return e.Buffer[e.Offset : e.Offset+e.Count]
}

// String returns the transferred bytes as hex.
func (e DataEventArgs) String() string {
	str, err := gxcommon.ToString(e.Data())
	if err != nil {
		return fmt.Sprintf("% X", e.Data())
	}
	return str
}

// DataEventHandler is called when data is received or a send is submitted.
type DataEventHandler func(c *GXSocketClient, e DataEventArgs)

// SendCompletedHandler is called when a send resolves. ok is false if the client
// was not connected or the write failed.
type SendCompletedHandler func(c *GXSocketClient, ok bool)

// PeerResetHandler is called once when the peer closes or resets the connection.
type PeerResetHandler func(c *GXSocketClient)

// ErrorEventHandler is called when the receive loop fails with a socket fault.
// err is a *SocketError.
type ErrorEventHandler func(c *GXSocketClient, err error)

// MediaStateHandler is called when the connection state changes.
type MediaStateHandler func(c *GXSocketClient, e gxcommon.MediaStateEventArgs)

// TraceEventHandler is called for trace messages allowed by the trace level.
type TraceEventHandler func(c *GXSocketClient, e gxcommon.TraceEventArgs)
