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
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gurux/gxcommon-go"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultBufferSize is the receive buffer size used by the settings parser
	// when no size is given.
	DefaultBufferSize = 1024
	// DefaultTimeout is the connect timeout in milliseconds.
	DefaultTimeout = 10000
	// DefaultQueueSize is the capacity of the notification queue.
	DefaultQueueSize = 1024
)

// GXSocketClient is an event driven TCP client for a single remote endpoint.
type GXSocketClient struct {
	endpoint   *net.TCPAddr
	bufferSize int

	mu sync.RWMutex
	// Connection timeout.
	timeout    time.Duration
	queueSize  int
	noDelay    bool
	keepAlive  bool
	traceLevel gxcommon.TraceLevel

	sess  *session
	state ConnectionState

	//Called when new data is received.
	onReceive DataEventHandler
	//Called when a send is handed to the socket.
	onSent DataEventHandler
	//Called when a send resolves.
	onSendCompleted SendCompletedHandler
	//Called when the peer closes the connection.
	onPeerReset PeerResetHandler
	//Called when the receive loop fails.
	onErr ErrorEventHandler
	//Called when the connection state is changed.
	onState MediaStateHandler
	//Called when the client is sending or receiving data.
	onTrace TraceEventHandler

	events    chan event
	pendingMu sync.Mutex
	pending   []event
	wake      chan struct{}
	start     sync.Once
	done      chan struct{}
	closeOnce sync.Once
	disposed  atomic.Bool
	wg        sync.WaitGroup

	bytesSent     atomic.Uint64
	bytesReceived atomic.Uint64
	stats         *sendStats

	// Printer for localized messages.
	p *message.Printer
}

// session is one live connection and the receive slots of its listen loop.
type session struct {
	conn      *net.TCPConn
	slots     *receiveSlots
	stop      chan struct{}
	closeOnce sync.Once
	listening atomic.Bool
}

func newSession(conn *net.TCPConn, bufferSize int) *session {
	return &session{
		conn:  conn,
		slots: newReceiveSlots(bufferSize),
		stop:  make(chan struct{}),
	}
}

func (s *session) close() error {
	var err error = gxcommon.ErrConnectionClosed
	s.closeOnce.Do(func() {
		close(s.stop)
		err = s.conn.Close()
	})
	return err
}

func (s *session) stopped() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

type dialResult struct {
	conn *net.TCPConn
	err  error
}

// NewGXSocketClient creates a client for the given remote address and port.
// bufferSize is the size of every receive buffer.
func NewGXSocketClient(address net.IP, port int, bufferSize int) *GXSocketClient {
	g := &GXSocketClient{
		endpoint:   &net.TCPAddr{IP: address, Port: port},
		bufferSize: bufferSize,
		timeout:    time.Duration(DefaultTimeout) * time.Millisecond,
		queueSize:  DefaultQueueSize,
		noDelay:    true,
		done:       make(chan struct{}),
		wake:       make(chan struct{}, 1),
		stats:      newSendStats(),
	}
	g.Localize(language.AmericanEnglish)
	return g
}

// String returns the remote endpoint.
func (g *GXSocketClient) String() string {
	return g.endpoint.String()
}

// GetName returns the remote endpoint.
func (g *GXSocketClient) GetName() string {
	return g.endpoint.String()
}

// GetMediaType returns the media type name.
func (g *GXSocketClient) GetMediaType() string {
	return "Socket"
}

// Endpoint returns the remote endpoint.
func (g *GXSocketClient) Endpoint() *net.TCPAddr {
	return g.endpoint
}

// BufferSize returns the size of the receive buffers.
func (g *GXSocketClient) BufferSize() int {
	return g.bufferSize
}

// Validate checks the endpoint and the buffer size.
func (g *GXSocketClient) Validate() error {
	if g.endpoint.IP == nil || g.endpoint.IP.IsUnspecified() {
		return ErrInvalidAddress
	}
	if g.endpoint.Port < 1 || g.endpoint.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, g.endpoint.Port)
	}
	if g.bufferSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBufferSize, g.bufferSize)
	}
	return nil
}

// GetTimeout returns the connection timeout in milliseconds.
func (g *GXSocketClient) GetTimeout() uint32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return uint32(g.timeout / time.Millisecond)
}

// SetTimeout sets the connection timeout in milliseconds.
// Zero waits until the connect attempt resolves.
func (g *GXSocketClient) SetTimeout(value uint32) error {
	g.mu.Lock()
	g.timeout = time.Duration(value) * time.Millisecond
	g.mu.Unlock()
	return nil
}

// SetQueueSize sets the capacity of the notification queue.
// It has effect only before the first Connect or Send.
func (g *GXSocketClient) SetQueueSize(value int) {
	g.mu.Lock()
	g.queueSize = value
	g.mu.Unlock()
}

// SetNoDelay enables or disables TCP_NODELAY on the next connection. Default is true.
func (g *GXSocketClient) SetNoDelay(value bool) {
	g.mu.Lock()
	g.noDelay = value
	g.mu.Unlock()
}

// SetKeepAlive enables or disables SO_KEEPALIVE on the next connection.
func (g *GXSocketClient) SetKeepAlive(value bool) {
	g.mu.Lock()
	g.keepAlive = value
	g.mu.Unlock()
}

// GetTrace returns the trace level.
func (g *GXSocketClient) GetTrace() gxcommon.TraceLevel {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.traceLevel
}

// SetTrace sets the trace level.
func (g *GXSocketClient) SetTrace(traceLevel gxcommon.TraceLevel) error {
	g.mu.Lock()
	g.traceLevel = traceLevel
	g.mu.Unlock()
	return nil
}

// SetOnReceived sets the handler for received data.
func (g *GXSocketClient) SetOnReceived(value DataEventHandler) {
	g.mu.Lock()
	g.onReceive = value
	g.mu.Unlock()
}

// SetOnSent sets the handler called when a send is submitted.
// It does not mean that the peer has received the data.
func (g *GXSocketClient) SetOnSent(value DataEventHandler) {
	g.mu.Lock()
	g.onSent = value
	g.mu.Unlock()
}

// SetOnSendCompleted sets the handler called when a send resolves.
func (g *GXSocketClient) SetOnSendCompleted(value SendCompletedHandler) {
	g.mu.Lock()
	g.onSendCompleted = value
	g.mu.Unlock()
}

// SetOnPeerReset sets the handler called when the peer closes the connection.
func (g *GXSocketClient) SetOnPeerReset(value PeerResetHandler) {
	g.mu.Lock()
	g.onPeerReset = value
	g.mu.Unlock()
}

// SetOnError sets the handler for receive faults.
func (g *GXSocketClient) SetOnError(value ErrorEventHandler) {
	g.mu.Lock()
	g.onErr = value
	g.mu.Unlock()
}

// SetOnMediaStateChange sets the handler for connection state changes.
func (g *GXSocketClient) SetOnMediaStateChange(value MediaStateHandler) {
	g.mu.Lock()
	g.onState = value
	g.mu.Unlock()
}

// SetOnTrace sets the trace handler.
func (g *GXSocketClient) SetOnTrace(value TraceEventHandler) {
	g.mu.Lock()
	g.onTrace = value
	g.mu.Unlock()
}

// State returns the connection state.
func (g *GXSocketClient) State() ConnectionState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Connected returns true if the client is connected.
func (g *GXSocketClient) Connected() bool {
	return g.State() == ConnectionStateConnected
}

// IsOpen returns true if the client is connected.
func (g *GXSocketClient) IsOpen() bool {
	return g.Connected()
}

// Connect connects to the remote endpoint and starts listening.
// It blocks until the attempt resolves or the timeout elapses.
func (g *GXSocketClient) Connect() bool {
	return g.Open() == nil
}

// Open connects to the remote endpoint and starts listening.
// An existing connection is released first.
func (g *GXSocketClient) Open() error {
	if g.disposed.Load() {
		return ErrDisposed
	}
	if err := g.Validate(); err != nil {
		return err
	}
	g.mu.Lock()
	old := g.sess
	g.sess = nil
	g.state = ConnectionStateConnecting
	timeout, noDelay, keepAlive := g.timeout, g.noDelay, g.keepAlive
	g.mu.Unlock()
	if old != nil {
		_ = old.close()
	}
	g.statef(ConnectionStateConnecting)
	g.trace(gxcommon.TraceTypesInfo, g.printer().Sprintf("msg.connecting_to", g.endpoint.String(), timeout.Milliseconds()))

	conn, err := g.dial(timeout)
	if err == nil {
		if err = applySocketOptions(conn, noDelay, keepAlive); err != nil {
			_ = conn.Close()
		}
	}
	if err != nil {
		g.trace(gxcommon.TraceTypesError, g.printer().Sprintf("msg.connect_failed", g.endpoint.String(), err))
		g.connectFailed()
		return err
	}

	s := newSession(conn, g.bufferSize)
	g.mu.Lock()
	if g.disposed.Load() {
		g.mu.Unlock()
		_ = s.close()
		return ErrDisposed
	}
	prev := g.sess
	g.sess = s
	g.state = ConnectionStateConnected
	g.mu.Unlock()
	if prev != nil {
		// Another Connect finished first.
		_ = prev.close()
	}
	g.trace(gxcommon.TraceTypesInfo, g.printer().Sprintf("msg.connected_to", g.endpoint.String()))
	g.statef(ConnectionStateConnected)
	g.listenSession(s)
	return nil
}

// connectFailed moves the client back to Unconnected unless a concurrent
// attempt has installed a connection in the meantime.
func (g *GXSocketClient) connectFailed() bool {
	g.mu.Lock()
	changed := g.sess == nil && g.state != ConnectionStateUnconnected
	if changed {
		g.state = ConnectionStateUnconnected
	}
	g.mu.Unlock()
	if changed {
		g.statef(ConnectionStateUnconnected)
	}
	return changed
}

// dial runs one connect attempt and waits for it at most timeout.
// The result channel belongs to this attempt only, so a late completion
// is closed and never observed by a later attempt.
func (g *GXSocketClient) dial(timeout time.Duration) (*net.TCPConn, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	result := make(chan dialResult, 1)
	go func() {
		var d net.Dialer
		c, err := d.DialContext(ctx, g.network(), g.endpoint.String())
		if err != nil {
			result <- dialResult{err: err}
			return
		}
		result <- dialResult{conn: c.(*net.TCPConn)}
	}()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}
	var err error
	select {
	case r := <-result:
		return r.conn, r.err
	case <-expired:
		err = fmt.Errorf("%w: %s after %v", ErrConnectTimeout, g.endpoint, timeout)
	case <-g.done:
		err = ErrDisposed
	}
	cancel()
	go func() {
		if r := <-result; r.conn != nil {
			_ = r.conn.Close()
		}
	}()
	return nil, err
}

func (g *GXSocketClient) network() string {
	if g.endpoint.IP.To4() != nil {
		return "tcp4"
	}
	return "tcp6"
}

// Listen arms the receive loop if the client is connected and the loop is not
// running. The loop stops after a socket fault; Listen resumes it.
func (g *GXSocketClient) Listen() {
	g.mu.RLock()
	s := g.sess
	g.mu.RUnlock()
	if s != nil {
		g.listenSession(s)
	}
}

func (g *GXSocketClient) listenSession(s *session) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed.Load() || g.sess != s || g.state != ConnectionStateConnected || s.stopped() {
		return false
	}
	if !s.listening.CompareAndSwap(false, true) {
		return false
	}
	g.wg.Add(1)
	go g.listen(s)
	return true
}

// Send writes data to the peer asynchronously. data is copied before Send returns.
//
// The sent handler is called when the write is submitted and the send completed
// handler when it resolves. If the client is not connected only the send
// completed handler is called, with false.
func (g *GXSocketClient) Send(data []byte) {
	g.mu.RLock()
	s := g.sess
	ok := s != nil && g.state == ConnectionStateConnected && !g.disposed.Load()
	if ok {
		g.wg.Add(1)
	}
	g.mu.RUnlock()
	if !ok {
		g.trace(gxcommon.TraceTypesError, g.printer().Sprintf("msg.not_connected", g.endpoint.String()))
		g.enqueue(event{kind: evSendCompleted, ok: false})
		return
	}
	buf := bytebufferpool.Get()
	_, _ = buf.Write(data)
	g.tracef(gxcommon.TraceTypesSent, "TX: %s", DataEventArgs{Buffer: data, Count: len(data)})
	g.enqueue(event{kind: evSent, data: DataEventArgs{Buffer: data, Count: len(data)}})
	go g.write(s, buf, time.Now())
}

func (g *GXSocketClient) write(s *session, buf *bytebufferpool.ByteBuffer, start time.Time) {
	defer g.wg.Done()
	n, err := s.conn.Write(buf.B)
	bytebufferpool.Put(buf)
	g.bytesSent.Add(uint64(n))
	g.stats.record(time.Since(start), err)
	if err != nil {
		g.trace(gxcommon.TraceTypesError, g.printer().Sprintf("msg.send_failed", err))
	}
	g.enqueue(event{kind: evSendCompleted, ok: err == nil})
}

// Disconnect closes the connection. Pending receives end without notifications,
// pending sends resolve as failed.
func (g *GXSocketClient) Disconnect() error {
	g.mu.Lock()
	s := g.sess
	g.sess = nil
	if s != nil {
		g.state = ConnectionStateClosed
	}
	g.mu.Unlock()
	if s == nil {
		return nil
	}
	g.trace(gxcommon.TraceTypesInfo, g.printer().Sprintf("msg.closing_connection", g.endpoint.String()))
	g.enqueue(event{kind: evState, state: gxcommon.MediaStateClosing})
	err := s.close()
	g.trace(gxcommon.TraceTypesInfo, g.printer().Sprintf("msg.connection_closed", g.endpoint.String()))
	g.statef(ConnectionStateClosed)
	if errors.Is(err, gxcommon.ErrConnectionClosed) {
		err = nil
	}
	return err
}

// Close disposes the client. The connection is closed, pending operations are
// waited for and no handler is called after Close returns.
func (g *GXSocketClient) Close() error {
	var err error
	g.closeOnce.Do(func() {
		g.disposed.Store(true)
		close(g.done)
		g.mu.Lock()
		s := g.sess
		g.sess = nil
		if s != nil {
			g.state = ConnectionStateClosed
		}
		g.mu.Unlock()
		if s != nil {
			if err = s.close(); errors.Is(err, gxcommon.ErrConnectionClosed) {
				err = nil
			}
			g.trace(gxcommon.TraceTypesInfo, g.printer().Sprintf("msg.connection_closed", g.endpoint.String()))
		}
		g.wg.Wait()
	})
	return err
}

// GetBytesSent returns the number of bytes written to the socket.
func (g *GXSocketClient) GetBytesSent() uint64 {
	return g.bytesSent.Load()
}

// GetBytesReceived returns the number of bytes read from the socket.
func (g *GXSocketClient) GetBytesReceived() uint64 {
	return g.bytesReceived.Load()
}

// ResetByteCounters resets the sent and received byte counters.
func (g *GXSocketClient) ResetByteCounters() {
	g.bytesSent.Store(0)
	g.bytesReceived.Store(0)
}

func (g *GXSocketClient) tracef(traceType gxcommon.TraceTypes, fmtStr string, a ...any) {
	g.mu.RLock()
	trace := !(int(g.traceLevel) < int(traceType))
	cb := g.onTrace
	g.mu.RUnlock()
	if cb != nil && trace {
		p := gxcommon.NewTraceEventArgs(traceType, fmt.Sprintf(fmtStr, a...), "")
		cb(g, *p)
	}
}

func (g *GXSocketClient) trace(traceType gxcommon.TraceTypes, message string) {
	g.mu.RLock()
	trace := !(int(g.traceLevel) < int(traceType))
	cb := g.onTrace
	g.mu.RUnlock()
	if cb != nil && trace {
		p := gxcommon.NewTraceEventArgs(traceType, message, "")
		cb(g, *p)
	}
}

func (g *GXSocketClient) statef(state ConnectionState) {
	g.enqueue(event{kind: evState, state: state.mediaState()})
}

// Localize messages for the specified language.
// No errors is returned if language is not supported.
func (g *GXSocketClient) Localize(language language.Tag) {
	p := message.NewPrinter(language)
	g.mu.Lock()
	g.p = p
	g.mu.Unlock()
}

func (g *GXSocketClient) printer() *message.Printer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.p
}

//nolint:errcheck
func init() {
	// --- English (default) ---
	message.SetString(language.AmericanEnglish, "msg.connecting_to", "Connecting to %s timeout %d ms")
	message.SetString(language.AmericanEnglish, "msg.connected_to", "Connected to %s")
	message.SetString(language.AmericanEnglish, "msg.connect_failed", "connect to %s failed: %v")
	message.SetString(language.AmericanEnglish, "msg.closing_connection", "Closing connection to %s")
	message.SetString(language.AmericanEnglish, "msg.connection_closed", "Connection closed to %s")
	message.SetString(language.AmericanEnglish, "msg.peer_reset", "Connection closed by %s")
	message.SetString(language.AmericanEnglish, "msg.receive_failed", "Receive failed: %v")
	message.SetString(language.AmericanEnglish, "msg.send_failed", "Send failed: %v")
	message.SetString(language.AmericanEnglish, "msg.not_connected", "Not connected to %s")

	// --- German (de) ---
	message.SetString(language.German, "msg.connecting_to", "Verbindung zu %s wird aufgebaut timeout %d ms")
	message.SetString(language.German, "msg.connected_to", "Verbunden mit %s")
	message.SetString(language.German, "msg.connect_failed", "Verbindung zu %s fehlgeschlagen: %v")
	message.SetString(language.German, "msg.closing_connection", "Verbindung zu %s wird geschlossen")
	message.SetString(language.German, "msg.connection_closed", "Verbindung zu %s wurde geschlossen")
	message.SetString(language.German, "msg.peer_reset", "Verbindung von %s geschlossen")
	message.SetString(language.German, "msg.receive_failed", "Empfang fehlgeschlagen: %v")
	message.SetString(language.German, "msg.send_failed", "Senden fehlgeschlagen: %v")
	message.SetString(language.German, "msg.not_connected", "Nicht mit %s verbunden")

	// --- Finnish (fi) ---
	message.SetString(language.Finnish, "msg.connecting_to", "Yhdistetään kohteeseen %s timeout %d ms")
	message.SetString(language.Finnish, "msg.connected_to", "Yhdistetty kohteeseen %s")
	message.SetString(language.Finnish, "msg.connect_failed", "Yhteyden muodostus kohteeseen %s epäonnistui: %v")
	message.SetString(language.Finnish, "msg.closing_connection", "Suljetaan yhteys kohteeseen %s")
	message.SetString(language.Finnish, "msg.connection_closed", "Yhteys suljettu kohteeseen %s")
	message.SetString(language.Finnish, "msg.peer_reset", "%s sulki yhteyden")
	message.SetString(language.Finnish, "msg.receive_failed", "Vastaanotto epäonnistui: %v")
	message.SetString(language.Finnish, "msg.send_failed", "Lähetys epäonnistui: %v")
	message.SetString(language.Finnish, "msg.not_connected", "Ei yhteyttä kohteeseen %s")

	// --- Swedish (sv) ---
	message.SetString(language.Swedish, "msg.connecting_to", "Ansluter till %s timeout %d ms")
	message.SetString(language.Swedish, "msg.connected_to", "Ansluten till %s")
	message.SetString(language.Swedish, "msg.connect_failed", "Anslutning till %s misslyckades: %v")
	message.SetString(language.Swedish, "msg.closing_connection", "Stänger anslutning till %s")
	message.SetString(language.Swedish, "msg.connection_closed", "Anslutning stängd till %s")
	message.SetString(language.Swedish, "msg.peer_reset", "Anslutningen stängdes av %s")
	message.SetString(language.Swedish, "msg.receive_failed", "Mottagning misslyckades: %v")
	message.SetString(language.Swedish, "msg.send_failed", "Sändning misslyckades: %v")
	message.SetString(language.Swedish, "msg.not_connected", "Inte ansluten till %s")

	// --- Spanish (es) ---
	message.SetString(language.Spanish, "msg.connecting_to", "Conectando a %s timeout %d ms")
	message.SetString(language.Spanish, "msg.connected_to", "Conectado a %s")
	message.SetString(language.Spanish, "msg.connect_failed", "Error al conectar con %s: %v")
	message.SetString(language.Spanish, "msg.closing_connection", "Cerrando conexión con %s")
	message.SetString(language.Spanish, "msg.connection_closed", "Conexión cerrada con %s")
	message.SetString(language.Spanish, "msg.peer_reset", "Conexión cerrada por %s")
	message.SetString(language.Spanish, "msg.receive_failed", "Error de recepción: %v")
	message.SetString(language.Spanish, "msg.send_failed", "Error de envío: %v")
	message.SetString(language.Spanish, "msg.not_connected", "No conectado a %s")

	// --- Estonian (et) ---
	message.SetString(language.Estonian, "msg.connecting_to", "Ühendatakse sihtkohta %s timeout %d ms")
	message.SetString(language.Estonian, "msg.connected_to", "Ühendatud sihtkohta %s")
	message.SetString(language.Estonian, "msg.connect_failed", "Ühendamine sihtkohta %s ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.closing_connection", "Suletakse ühendus sihtkohta %s")
	message.SetString(language.Estonian, "msg.connection_closed", "Ühendus suleti sihtkohta %s")
	message.SetString(language.Estonian, "msg.peer_reset", "%s sulges ühenduse")
	message.SetString(language.Estonian, "msg.receive_failed", "Vastuvõtt ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.send_failed", "Saatmine ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.not_connected", "Puudub ühendus sihtkohta %s")
}
