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
	"fmt"
	"syscall"
)

var (
	// ErrDisposed is returned when the client is used after Close.
	ErrDisposed = errors.New("socket client is disposed")
	// ErrInvalidAddress is returned when the remote address is missing.
	ErrInvalidAddress = errors.New("invalid remote address")
	// ErrInvalidPort is returned when the remote port is outside 1..65535.
	ErrInvalidPort = errors.New("invalid remote port")
	// ErrInvalidBufferSize is returned when the receive buffer size is not positive.
	ErrInvalidBufferSize = errors.New("invalid receive buffer size")
	// ErrConnectTimeout is returned when the connect attempt does not resolve in time.
	ErrConnectTimeout = errors.New("connect timed out")
)

// SocketError describes a socket level fault reported by the receive loop.
type SocketError struct {
	// Op is the failed operation, "read" or "write".
	Op string
	// Code is the operating system error code. Zero if the fault did not carry one.
	Code syscall.Errno
	Err  error
}

func newSocketError(op string, err error) *SocketError {
	return &SocketError{Op: op, Code: errnoOf(err), Err: err}
}

// Error implements error.
func (e *SocketError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("socket %s failed (%d): %v", e.Op, int(e.Code), e.Err)
	}
	return fmt.Sprintf("socket %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *SocketError) Unwrap() error {
	return e.Err
}

func errnoOf(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return 0
}
