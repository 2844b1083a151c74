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
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// maxLatency is the highest send latency the histogram records, in microseconds.
const maxLatency = int64(time.Minute / time.Microsecond)

// Statistics is a snapshot of the client counters.
type Statistics struct {
	BytesSent     uint64
	BytesReceived uint64
	// Sends is the number of resolved sends, failed ones included.
	Sends        int64
	SendFailures int64
	// Send latency from submission to completion.
	SendLatencyMin  time.Duration
	SendLatencyMean time.Duration
	SendLatencyP50  time.Duration
	SendLatencyP99  time.Duration
	SendLatencyMax  time.Duration
}

type sendStats struct {
	mu       sync.Mutex
	hist     *hdrhistogram.Histogram
	failures int64
}

func newSendStats() *sendStats {
	return &sendStats{hist: hdrhistogram.New(1, maxLatency, 3)}
}

func (s *sendStats) record(d time.Duration, err error) {
	v := int64(d / time.Microsecond)
	if v < 1 {
		v = 1
	} else if v > maxLatency {
		v = maxLatency
	}
	s.mu.Lock()
	_ = s.hist.RecordValue(v)
	if err != nil {
		s.failures++
	}
	s.mu.Unlock()
}

func (s *sendStats) reset() {
	s.mu.Lock()
	s.hist.Reset()
	s.failures = 0
	s.mu.Unlock()
}

func (s *sendStats) fill(st *Statistics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.Sends = s.hist.TotalCount()
	st.SendFailures = s.failures
	if st.Sends == 0 {
		return
	}
	st.SendLatencyMin = time.Duration(s.hist.Min()) * time.Microsecond
	st.SendLatencyMean = time.Duration(s.hist.Mean() * float64(time.Microsecond))
	st.SendLatencyP50 = time.Duration(s.hist.ValueAtPercentile(50.0)) * time.Microsecond
	st.SendLatencyP99 = time.Duration(s.hist.ValueAtPercentile(99.0)) * time.Microsecond
	st.SendLatencyMax = time.Duration(s.hist.Max()) * time.Microsecond
}

// Stats returns the byte counters and the send latency distribution.
func (g *GXSocketClient) Stats() Statistics {
	st := Statistics{
		BytesSent:     g.bytesSent.Load(),
		BytesReceived: g.bytesReceived.Load(),
	}
	g.stats.fill(&st)
	return st
}

// ResetStats resets the byte counters and the send latency distribution.
func (g *GXSocketClient) ResetStats() {
	g.ResetByteCounters()
	g.stats.reset()
}
