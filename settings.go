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
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

func xmlEscape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}

// GetSettings returns the client settings as an XML fragment.
func (g *GXSocketClient) GetSettings() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var b strings.Builder
	if g.endpoint.IP != nil {
		fmt.Fprintf(&b, "<IP>%s</IP>\n", xmlEscape(g.endpoint.IP.String()))
	}
	if g.endpoint.Port != 0 {
		fmt.Fprintf(&b, "<Port>%d</Port>\n", g.endpoint.Port)
	}
	if g.bufferSize != DefaultBufferSize {
		fmt.Fprintf(&b, "<BufferSize>%d</BufferSize>\n", g.bufferSize)
	}
	if ms := g.timeout.Milliseconds(); ms != DefaultTimeout {
		fmt.Fprintf(&b, "<Timeout>%d</Timeout>\n", ms)
	}
	if !g.noDelay {
		b.WriteString("<NoDelay>0</NoDelay>\n")
	}
	if g.keepAlive {
		b.WriteString("<KeepAlive>1</KeepAlive>\n")
	}
	return b.String()
}

// NewGXSocketClientFromSettings creates a client from an XML fragment
// produced by GetSettings.
func NewGXSocketClientFromSettings(value string) (*GXSocketClient, error) {
	var (
		address    net.IP
		port       int
		bufferSize = DefaultBufferSize
		timeout    = -1
		noDelay    = true
		keepAlive  bool
	)
	dec := xml.NewDecoder(strings.NewReader("<root>" + value + "</root>"))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		var v string
		switch se.Name.Local {
		case "IP", "Port", "BufferSize", "Timeout", "NoDelay", "KeepAlive":
			if err := dec.DecodeElement(&v, &se); err != nil {
				return nil, err
			}
			v = strings.TrimSpace(v)
		default:
			continue
		}
		switch se.Name.Local {
		case "IP":
			if address = net.ParseIP(v); address == nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, v)
			}
		case "Port":
			if port, err = strconv.Atoi(v); err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidPort, v)
			}
		case "BufferSize":
			if bufferSize, err = strconv.Atoi(v); err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidBufferSize, v)
			}
		case "Timeout":
			if timeout, err = strconv.Atoi(v); err != nil || timeout < 0 {
				return nil, fmt.Errorf("invalid timeout: %q", v)
			}
		case "NoDelay":
			noDelay = v == "1"
		case "KeepAlive":
			keepAlive = v == "1"
		}
	}
	g := NewGXSocketClient(address, port, bufferSize)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if timeout >= 0 {
		_ = g.SetTimeout(uint32(timeout))
	}
	g.SetNoDelay(noDelay)
	g.SetKeepAlive(keepAlive)
	return g, nil
}
