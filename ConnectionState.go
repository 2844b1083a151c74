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
	"strings"

	"github.com/Gurux/gxcommon-go"
)

// ConnectionState is the lifecycle state of the client connection.
type ConnectionState int

const (
	// ConnectionStateUnconnected defines that no socket is allocated or the last connect failed.
	ConnectionStateUnconnected ConnectionState = iota
	// ConnectionStateConnecting defines that a connect attempt is in progress.
	ConnectionStateConnecting
	// ConnectionStateConnected defines that the socket is connected and sends are accepted.
	ConnectionStateConnected
	// ConnectionStateClosed defines that the socket was closed locally or by the peer.
	ConnectionStateClosed
)

// ConnectionStateParse converts the given string into a ConnectionState value.
//
// It returns the corresponding ConnectionState constant if the string matches
// a known state name, or an error if the input is invalid.
func ConnectionStateParse(value string) (ConnectionState, error) {
	var ret ConnectionState
	var err error
	switch strings.ToUpper(value) {
	case "UNCONNECTED":
		ret = ConnectionStateUnconnected
	case "CONNECTING":
		ret = ConnectionStateConnecting
	case "CONNECTED":
		ret = ConnectionStateConnected
	case "CLOSED":
		ret = ConnectionStateClosed
	default:
		err = fmt.Errorf("%w: %q", gxcommon.ErrUnknownEnum, value)
	}
	return ret, err
}

// String returns the canonical name of the connection state.
// It satisfies fmt.Stringer.
func (g ConnectionState) String() string {
	var ret string
	switch g {
	case ConnectionStateUnconnected:
		ret = "Unconnected"
	case ConnectionStateConnecting:
		ret = "Connecting"
	case ConnectionStateConnected:
		ret = "Connected"
	case ConnectionStateClosed:
		ret = "Closed"
	}
	return ret
}

// mediaState maps the connection state to the media state published to
// state change listeners.
func (g ConnectionState) mediaState() gxcommon.MediaState {
	switch g {
	case ConnectionStateConnecting:
		return gxcommon.MediaStateOpening
	case ConnectionStateConnected:
		return gxcommon.MediaStateOpen
	default:
		return gxcommon.MediaStateClosed
	}
}
