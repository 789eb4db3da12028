package rpc

import (
	"errors"
	"fmt"
	"net/rpc"
	"sync"

	"github.com/BrugadaSyndrome/bslogger"
)

var (
	ErrNotConnected = errors.New("not connected")
)

// TcpClient is a net/rpc client that can be shared between goroutines.
type TcpClient struct {
	client        *rpc.Client
	mutex         sync.RWMutex
	serverAddress string

	Logger bslogger.Logger
	Name   string
}

func NewTcpClient(serverAddress string, name string) *TcpClient {
	return &TcpClient{
		serverAddress: serverAddress,
		Name:          name,
		Logger:        bslogger.NewLogger(name, bslogger.Normal, nil),
	}
}

// Connect dials the server. Connecting an already connected client does nothing.
func (tc *TcpClient) Connect() error {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if tc.client != nil {
		tc.Logger.Debugf("Already connected to %s", tc.serverAddress)
		return nil
	}

	client, err := rpc.Dial("tcp", tc.serverAddress)
	if err != nil {
		tc.Logger.Errorf("Connecting to %s - %s", tc.serverAddress, err)
		return err
	}
	tc.client = client
	tc.Logger.Infof("Connected to %s", tc.serverAddress)
	return nil
}

func (tc *TcpClient) Call(method string, request interface{}, reply interface{}) error {
	tc.mutex.RLock()
	client := tc.client
	tc.mutex.RUnlock()

	if client == nil {
		tc.Logger.Errorf("Calling %s on %s while disconnected", method, tc.serverAddress)
		return fmt.Errorf("%w: %s calling %s", ErrNotConnected, tc.serverAddress, method)
	}

	if err := client.Call(method, request, reply); err != nil {
		tc.Logger.Errorf("Calling %s on %s - %s", method, tc.serverAddress, err)
		return err
	}
	tc.Logger.Debugf("Called %s on %s", method, tc.serverAddress)
	return nil
}

// Disconnect closes the connection. Calls in flight fail with rpc.ErrShutdown.
func (tc *TcpClient) Disconnect() error {
	tc.mutex.Lock()
	client := tc.client
	tc.client = nil
	tc.mutex.Unlock()

	if client == nil {
		tc.Logger.Warningf("Already disconnected from %s", tc.serverAddress)
		return fmt.Errorf("%w: %s", ErrNotConnected, tc.serverAddress)
	}

	if err := client.Close(); err != nil {
		tc.Logger.Errorf("Disconnecting from %s - %s", tc.serverAddress, err)
		return err
	}
	tc.Logger.Infof("Disconnected from %s", tc.serverAddress)
	return nil
}
