//go:build windows

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
	"io"
	"net"

	"golang.org/x/sys/windows"
)

// isPeerReset reports whether the receive error means the peer closed the connection.
func isPeerReset(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, windows.WSAECONNRESET) ||
		errors.Is(err, windows.WSAECONNABORTED)
}

func applySocketOptions(c *net.TCPConn, noDelay, keepAlive bool) error {
	rc, err := c.SyscallConn()
	if err != nil {
		return err
	}
	var serr error
	err = rc.Control(func(fd uintptr) {
		h := windows.Handle(fd)
		serr = windows.SetsockoptInt(h, windows.IPPROTO_TCP, windows.TCP_NODELAY, boolToInt(noDelay))
		if serr != nil {
			return
		}
		serr = windows.SetsockoptInt(h, windows.SOL_SOCKET, windows.SO_KEEPALIVE, boolToInt(keepAlive))
	})
	if err != nil {
		return err
	}
	return serr
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
