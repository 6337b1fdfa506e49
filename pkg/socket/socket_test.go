/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package socket

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sys/unix"

	"github.com/srediag/fdio/api"
	"github.com/srediag/fdio/pkg/fdio"
)

var (
	_ api.StreamEndpoint   = (*TCPSocket)(nil)
	_ api.StreamEndpoint   = (*LocalStreamSocket)(nil)
	_ api.DatagramEndpoint = (*UDPSocket)(nil)
	_ api.DatagramEndpoint = (*LocalDatagramSocket)(nil)
)

type SocketTestSuite struct {
	suite.Suite
}

var loopback = [4]byte{127, 0, 0, 1}

// boundUDP returns a UDP socket bound to an ephemeral loopback port and its
// bound address.
func (s *SocketTestSuite) boundUDP() (*UDPSocket, *unix.SockaddrInet4) {
	sock, err := NewUDPSocket()
	s.Require().NoError(err)
	s.Require().NoError(sock.Bind(&unix.SockaddrInet4{Addr: loopback}))
	addr, err := sock.LocalAddress()
	s.Require().NoError(err)
	return sock, addr.(*unix.SockaddrInet4)
}

// listeningTCP returns a listening TCP socket on an ephemeral loopback port
// and its bound address.
func (s *SocketTestSuite) listeningTCP() (*TCPSocket, *unix.SockaddrInet4) {
	ln, err := NewTCPSocket()
	s.Require().NoError(err)
	s.Require().NoError(ln.SetReuseaddr())
	s.Require().NoError(ln.Bind(&unix.SockaddrInet4{Addr: loopback}))
	s.Require().NoError(ln.Listen(DefaultBacklog))
	addr, err := ln.LocalAddress()
	s.Require().NoError(err)
	return ln, addr.(*unix.SockaddrInet4)
}

// closedLoopbackPort reserves an ephemeral port, closes the listener, and
// returns the now-refusing address.
func (s *SocketTestSuite) closedLoopbackPort() *unix.SockaddrInet4 {
	ln, addr := s.listeningTCP()
	s.Require().NoError(ln.Close())
	return addr
}

func (s *SocketTestSuite) TestUDPSendToAndRecv() {
	receiver, recvAddr := s.boundUDP()
	defer func() { _ = receiver.Close() }()
	sender, sendAddr := s.boundUDP()
	defer func() { _ = sender.Close() }()

	s.Require().NoError(sender.SendTo(recvAddr, []byte("abc")))

	payload, from, err := receiver.Recv()
	s.Require().NoError(err)
	s.Equal([]byte("abc"), payload)
	src, ok := from.(*unix.SockaddrInet4)
	s.Require().True(ok)
	s.Equal(sendAddr.Port, src.Port)
	s.Equal(sendAddr.Addr, src.Addr)
	s.Equal(uint64(1), receiver.ReadCount())
	s.Equal(uint64(1), sender.WriteCount())
}

func (s *SocketTestSuite) TestConnectedUDPSend() {
	receiver, recvAddr := s.boundUDP()
	defer func() { _ = receiver.Close() }()
	sender, err := NewUDPSocket()
	s.Require().NoError(err)
	defer func() { _ = sender.Close() }()

	s.Require().NoError(sender.Connect(recvAddr))
	s.Require().NoError(sender.Send([]byte("pong")))

	payload, _, err := receiver.Recv()
	s.Require().NoError(err)
	s.Equal([]byte("pong"), payload)

	peer, err := sender.PeerAddress()
	s.Require().NoError(err)
	s.Equal(recvAddr.Port, peer.(*unix.SockaddrInet4).Port)
}

func (s *SocketTestSuite) TestLocalStreamPairPing() {
	client, server, err := LocalStreamSocketPair()
	s.Require().NoError(err)
	defer func() { _ = server.Close() }()

	n, err := client.Write([]byte("ping"))
	s.Require().NoError(err)
	s.Equal(4, n)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	s.Require().NoError(server.Read(buf))
	s.Equal("ping", buf.String())
	s.Equal(uint64(1), server.ReadCount())

	s.Require().NoError(client.Close())
}

func (s *SocketTestSuite) TestUnixStreamListenerAccept() {
	// A bound, listening unix-domain endpoint built from raw descriptors,
	// with both ends wrapped as LocalStreamSocket.
	path := filepath.Join(s.T().TempDir(), "fdio_test.sock")
	addr := &unix.SockaddrUnix{Name: path}

	lfd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	s.Require().NoError(err)
	listener := NewLocalStreamSocket(fdio.New(lfd))
	defer func() { _ = listener.Close() }()
	s.Require().NoError(listener.Bind(addr))
	s.Require().NoError(fdio.CheckSystemCall("listen", unix.Listen(listener.FDNum(), DefaultBacklog)))

	accepted := make(chan *LocalStreamSocket, 1)
	go func() {
		fd, _, aErr := unix.Accept(listener.FDNum())
		if aErr != nil {
			panic("accept failed: " + aErr.Error())
		}
		accepted <- NewLocalStreamSocket(fdio.New(fd))
	}()

	cfd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	s.Require().NoError(err)
	client := NewLocalStreamSocket(fdio.New(cfd))
	defer func() { _ = client.Close() }()
	s.Require().NoError(client.Connect(addr))

	server := <-accepted
	defer func() { _ = server.Close() }()

	_, err = client.Write([]byte("ping"))
	s.Require().NoError(err)
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	s.Require().NoError(server.Read(buf))
	s.Equal("ping", buf.String())
	s.Equal(uint64(1), server.ReadCount())
}

func (s *SocketTestSuite) TestTCPListenAcceptRoundTrip() {
	ln, addr := s.listeningTCP()
	defer func() { _ = ln.Close() }()

	accepted := make(chan *TCPSocket, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			panic("accept failed: " + err.Error())
		}
		accepted <- conn
	}()

	client, err := NewTCPSocket()
	s.Require().NoError(err)
	defer func() { _ = client.Close() }()
	s.Require().NoError(client.Connect(addr))

	server := <-accepted
	defer func() { _ = server.Close() }()

	peer, err := server.PeerAddress()
	s.Require().NoError(err)
	local, err := client.LocalAddress()
	s.Require().NoError(err)
	s.Equal(local.(*unix.SockaddrInet4).Port, peer.(*unix.SockaddrInet4).Port)

	_, err = client.Write([]byte("over tcp"))
	s.Require().NoError(err)
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	s.Require().NoError(server.Read(buf))
	s.Equal("over tcp", buf.String())

	// Half-close the client's write side; the server observes eof while
	// the descriptors stay open.
	s.Require().NoError(client.Shutdown(unix.SHUT_WR))
	buf.Reset()
	s.Require().NoError(server.Read(buf))
	s.True(server.EOF())
	s.False(client.Closed())
}

func (s *SocketTestSuite) TestPendingErrorAfterNonBlockingConnect() {
	addr := s.closedLoopbackPort()

	client, err := NewTCPSocket()
	s.Require().NoError(err)
	defer func() { _ = client.Close() }()
	s.Require().NoError(client.SetBlocking(false))

	err = client.Connect(addr)
	if err == nil || errors.Is(err, unix.ECONNREFUSED) {
		// Loopback can resolve the refusal synchronously.
		return
	}
	s.Require().ErrorIs(err, unix.EINPROGRESS)

	deadline := time.Now().Add(2 * time.Second)
	for {
		err = client.PendingError()
		if err != nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	s.Require().Error(err, "pending connect failure must surface")
	s.ErrorIs(err, unix.ECONNREFUSED)
}

func (s *SocketTestSuite) TestOperationsAfterClose() {
	sock, err := NewUDPSocket()
	s.Require().NoError(err)
	s.Require().NoError(sock.Close())

	s.ErrorIs(sock.Bind(&unix.SockaddrInet4{Addr: loopback}), fdio.ErrClosed)
	s.ErrorIs(sock.Connect(&unix.SockaddrInet4{Addr: loopback, Port: 1}), fdio.ErrClosed)
	s.ErrorIs(sock.SendTo(&unix.SockaddrInet4{Addr: loopback, Port: 1}, []byte("x")), fdio.ErrClosed)
	_, _, err = sock.Recv()
	s.ErrorIs(err, fdio.ErrClosed)
	_, err = sock.LocalAddress()
	s.ErrorIs(err, fdio.ErrClosed)
	s.ErrorIs(sock.Close(), fdio.ErrClosed)
}

func (s *SocketTestSuite) TestKernelRejectsDoubleBind() {
	sock, addr := s.boundUDP()
	defer func() { _ = sock.Close() }()

	// No state tracking here: the second bind surfaces the kernel error.
	err := sock.Bind(&unix.SockaddrInet4{Addr: loopback, Port: addr.Port})
	s.Require().Error(err)
	s.ErrorIs(err, unix.EINVAL)
}

func (s *SocketTestSuite) TestLocalDatagramRoundTrip() {
	dir := s.T().TempDir()
	serverAddr := &unix.SockaddrUnix{Name: filepath.Join(dir, "server.sock")}

	server, err := NewLocalDatagramSocket()
	s.Require().NoError(err)
	defer func() { _ = server.Close() }()
	s.Require().NoError(server.Bind(serverAddr))

	client, err := NewLocalDatagramSocket()
	s.Require().NoError(err)
	defer func() { _ = client.Close() }()
	clientAddr := &unix.SockaddrUnix{Name: filepath.Join(dir, "client.sock")}
	s.Require().NoError(client.Bind(clientAddr))

	s.Require().NoError(client.SendTo(serverAddr, []byte("local")))
	payload, from, err := server.Recv()
	s.Require().NoError(err)
	s.Equal([]byte("local"), payload)
	s.Equal(clientAddr.Name, from.(*unix.SockaddrUnix).Name)
}

func (s *SocketTestSuite) TestFixedConstructionParameters() {
	sock, err := NewUDPSocket()
	s.Require().NoError(err)
	defer func() { _ = sock.Close() }()
	s.Equal(unix.AF_INET, sock.Domain())
	s.Equal(unix.SOCK_DGRAM, sock.Type())
	s.Equal(0, sock.Protocol())

	soType, err := sock.GetsockoptInt(unix.SOL_SOCKET, unix.SO_TYPE)
	s.Require().NoError(err)
	s.Equal(unix.SOCK_DGRAM, soType)
}

func TestSocketTestSuite(t *testing.T) {
	suite.Run(t, new(SocketTestSuite))
}
